package patient

import (
	"context"
	"errors"
	"strings"

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

const patientColumns = `id, mrn, hospital_id, branch_id, first_name, last_name,
	gender, birth_date, phone, status, version, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.Version = 1
	if p.MRN == "" {
		p.MRN = "MRN-" + strings.ToUpper(p.ID.String()[:8])
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO patient (id, mrn, hospital_id, branch_id, first_name, last_name,
			gender, birth_date, phone, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		p.ID, p.MRN, p.HospitalID, p.BranchID, p.FirstName, p.LastName,
		p.Gender, p.BirthDate, p.Phone, p.Status, p.Version,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "patient create", Err: err}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := r.scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientColumns+` FROM patient WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindPatient, ID: id}
	}
	if err != nil {
		return nil, &lifecycle.PersistenceError{Op: "patient get", Err: err}
	}
	return p, nil
}

// List returns patients, optionally restricted to one hospital. Scoped actors
// always pass their own hospital id; global admins pass nil.
func (r *repoPG) List(ctx context.Context, hospitalID *int64, limit, offset int) ([]*Patient, int, error) {
	countQuery := `SELECT COUNT(*) FROM patient`
	query := `SELECT ` + patientColumns + ` FROM patient`
	var args []interface{}

	if hospitalID != nil {
		countQuery += ` WHERE hospital_id = $1`
		query += ` WHERE hospital_id = $1`
		args = append(args, *hospitalID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "patient count", Err: err}
	}

	switch len(args) {
	case 0:
		query += ` ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	default:
		query += ` ORDER BY last_name, first_name LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "patient list", Err: err}
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, &lifecycle.PersistenceError{Op: "patient list", Err: err}
		}
		patients = append(patients, p)
	}
	return patients, total, nil
}

// Load implements lifecycle.EntityStore.
func (r *repoPG) Load(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Lifecycle(), nil
}

// Save implements lifecycle.EntityStore with a compare-and-swap on version.
func (r *repoPG) Save(ctx context.Context, e *lifecycle.Entity, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3`,
		e.ID, string(e.State), expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "patient save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, e.ID)
	}
	e.Version = expectedVersion + 1
	return nil
}

// Destroy implements lifecycle.EntityStore. Dependent clinical rows carry
// ON DELETE CASCADE constraints, so the single DELETE removes them too.
func (r *repoPG) Destroy(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1 AND version = $2`, id, expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "patient destroy", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

func (r *repoPG) missOrStale(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&exists); err != nil {
		return &lifecycle.PersistenceError{Op: "patient recheck", Err: err}
	}
	if !exists {
		return &lifecycle.NotFoundError{Kind: lifecycle.KindPatient, ID: id}
	}
	return &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}
}

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.MRN, &p.HospitalID, &p.BranchID, &p.FirstName, &p.LastName,
		&p.Gender, &p.BirthDate, &p.Phone, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
