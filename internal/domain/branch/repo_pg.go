package branch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/lifecycle"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const branchColumns = `id, hospital_id, name, code, address_line1, city, phone, status, version, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, b *Branch) error {
	b.ID = uuid.New()
	b.Version = 1
	err := r.pool.QueryRow(ctx, `
		INSERT INTO branch (id, hospital_id, name, code, address_line1, city, phone, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		b.ID, b.HospitalID, b.Name, b.Code, b.AddressLine1, b.City, b.Phone, b.Status, b.Version,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "branch create", Err: err}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Branch, error) {
	b, err := r.scanBranch(r.pool.QueryRow(ctx, `SELECT `+branchColumns+` FROM branch WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: id}
	}
	if err != nil {
		return nil, &lifecycle.PersistenceError{Op: "branch get", Err: err}
	}
	return b, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Branch, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM branch`).Scan(&total); err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "branch count", Err: err}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+branchColumns+` FROM branch ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "branch list", Err: err}
	}
	defer rows.Close()

	var branches []*Branch
	for rows.Next() {
		b, err := r.scanBranch(rows)
		if err != nil {
			return nil, 0, &lifecycle.PersistenceError{Op: "branch list", Err: err}
		}
		branches = append(branches, b)
	}
	return branches, total, nil
}

// Load implements lifecycle.EntityStore.
func (r *repoPG) Load(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return b.Lifecycle(), nil
}

// Save implements lifecycle.EntityStore with a compare-and-swap on version.
// Zero rows affected means either the branch is gone or someone else won the
// race; a follow-up existence check tells the two apart.
func (r *repoPG) Save(ctx context.Context, e *lifecycle.Entity, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE branch SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3`,
		e.ID, string(e.State), expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "branch save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, e.ID)
	}
	e.Version = expectedVersion + 1
	return nil
}

// Destroy implements lifecycle.EntityStore. Staff and patient links to the
// branch are detached by the schema's ON DELETE SET NULL constraints.
func (r *repoPG) Destroy(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM branch WHERE id = $1 AND version = $2`, id, expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "branch destroy", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

func (r *repoPG) missOrStale(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM branch WHERE id = $1)`, id).Scan(&exists); err != nil {
		return &lifecycle.PersistenceError{Op: "branch recheck", Err: err}
	}
	if !exists {
		return &lifecycle.NotFoundError{Kind: lifecycle.KindBranch, ID: id}
	}
	return &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}
}

func (r *repoPG) scanBranch(row pgx.Row) (*Branch, error) {
	var b Branch
	err := row.Scan(
		&b.ID, &b.HospitalID, &b.Name, &b.Code, &b.AddressLine1, &b.City, &b.Phone,
		&b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
