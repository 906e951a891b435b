package user

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

const userColumns = `id, hospital_id, branch_id, email, full_name, role_id,
	phone, status, version, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, u *AppUser) error {
	u.ID = uuid.New()
	u.Version = 1
	err := r.pool.QueryRow(ctx, `
		INSERT INTO app_user (id, hospital_id, branch_id, email, full_name, role_id, phone, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		u.ID, u.HospitalID, u.BranchID, u.Email, u.FullName, u.RoleID, u.Phone, u.Status, u.Version,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "user create", Err: err}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*AppUser, error) {
	u, err := r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindUser, ID: id}
	}
	if err != nil {
		return nil, &lifecycle.PersistenceError{Op: "user get", Err: err}
	}
	return u, nil
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*AppUser, error) {
	u, err := r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &lifecycle.NotFoundError{Kind: lifecycle.KindUser}
	}
	if err != nil {
		return nil, &lifecycle.PersistenceError{Op: "user get", Err: err}
	}
	return u, nil
}

func (r *repoPG) List(ctx context.Context, hospitalID *int64, limit, offset int) ([]*AppUser, int, error) {
	countQuery := `SELECT COUNT(*) FROM app_user`
	query := `SELECT ` + userColumns + ` FROM app_user`
	var args []interface{}

	if hospitalID != nil {
		countQuery += ` WHERE hospital_id = $1`
		query += ` WHERE hospital_id = $1`
		args = append(args, *hospitalID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "user count", Err: err}
	}

	switch len(args) {
	case 0:
		query += ` ORDER BY full_name LIMIT $1 OFFSET $2`
	default:
		query += ` ORDER BY full_name LIMIT $2 OFFSET $3`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, &lifecycle.PersistenceError{Op: "user list", Err: err}
	}
	defer rows.Close()

	var users []*AppUser
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, &lifecycle.PersistenceError{Op: "user list", Err: err}
		}
		users = append(users, u)
	}
	return users, total, nil
}

// Load implements lifecycle.EntityStore.
func (r *repoPG) Load(ctx context.Context, id uuid.UUID) (*lifecycle.Entity, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Lifecycle(), nil
}

// Save implements lifecycle.EntityStore with a compare-and-swap on version.
func (r *repoPG) Save(ctx context.Context, e *lifecycle.Entity, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE app_user SET status = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3`,
		e.ID, string(e.State), expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "user save", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, e.ID)
	}
	e.Version = expectedVersion + 1
	return nil
}

// Destroy implements lifecycle.EntityStore.
func (r *repoPG) Destroy(ctx context.Context, id uuid.UUID, expectedVersion int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM app_user WHERE id = $1 AND version = $2`, id, expectedVersion)
	if err != nil {
		return &lifecycle.PersistenceError{Op: "user destroy", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return r.missOrStale(ctx, id)
	}
	return nil
}

func (r *repoPG) missOrStale(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM app_user WHERE id = $1)`, id).Scan(&exists); err != nil {
		return &lifecycle.PersistenceError{Op: "user recheck", Err: err}
	}
	if !exists {
		return &lifecycle.NotFoundError{Kind: lifecycle.KindUser, ID: id}
	}
	return &lifecycle.ConflictError{Reason: lifecycle.ReasonStaleVersion}
}

func (r *repoPG) scanUser(row pgx.Row) (*AppUser, error) {
	var u AppUser
	err := row.Scan(
		&u.ID, &u.HospitalID, &u.BranchID, &u.Email, &u.FullName, &u.RoleID,
		&u.Phone, &u.Status, &u.Version, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
