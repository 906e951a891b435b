package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/lifecycle"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const auditColumns = `id, occurred_at, actor_id, actor_role, entity_kind, entity_id,
	entity_name, transition, prior_state, new_state, reason`

// Record implements lifecycle.Recorder.
func (r *repoPG) Record(ctx context.Context, rec *lifecycle.AuditRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_record (id, occurred_at, actor_id, actor_role, entity_kind, entity_id,
			entity_name, transition, prior_state, new_state, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.New(), rec.Timestamp, rec.ActorID, int(rec.ActorRole), string(rec.EntityKind), rec.EntityID,
		rec.EntityName, string(rec.Transition), string(rec.PriorState), string(rec.NewState), rec.Reason,
	)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "audit record", Err: err}
	}
	return nil
}

func (r *repoPG) Query(ctx context.Context, f Filter, limit, offset int) ([]*Entry, int, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_record WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM audit_record WHERE 1=1`
	var args []interface{}
	idx := 1

	addClause := func(clause string, arg interface{}) {
		c := fmt.Sprintf(clause, idx)
		query += c
		countQuery += c
		args = append(args, arg)
		idx++
	}

	if f.EntityKind != "" {
		addClause(` AND entity_kind = $%d`, f.EntityKind)
	}
	if f.EntityID != nil {
		addClause(` AND entity_id = $%d`, *f.EntityID)
	}
	if f.ActorID != "" {
		addClause(` AND actor_id = $%d`, f.ActorID)
	}
	if f.Transition != "" {
		addClause(` AND transition = $%d`, f.Transition)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "audit count", Err: err}
	}

	query += fmt.Sprintf(` ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "audit query", Err: err}
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.OccurredAt, &e.ActorID, &e.ActorRole, &e.EntityKind, &e.EntityID,
			&e.EntityName, &e.Transition, &e.PriorState, &e.NewState, &e.Reason,
		); err != nil {
			return nil, 0, &lifecycle.PersistenceError{Op: "audit query", Err: err}
		}
		entries = append(entries, &e)
	}
	return entries, total, nil
}
