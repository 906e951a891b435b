package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// AppUser maps to the app_user table: a staff account with exactly one role.
// Suspended blocks login but keeps the account; locked is the automatic
// variant set by the login throttle. Both reactivate the same way.
type AppUser struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	HospitalID int64      `db:"hospital_id" json:"hospital_id"`
	BranchID   *uuid.UUID `db:"branch_id" json:"branch_id,omitempty"`
	Email      string     `db:"email" json:"email"`
	FullName   string     `db:"full_name" json:"full_name"`
	RoleID     int        `db:"role_id" json:"role_id"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Status     string     `db:"status" json:"status"`
	Version    int        `db:"version" json:"version"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// Lifecycle returns the engine's view of the account.
func (u *AppUser) Lifecycle() *lifecycle.Entity {
	return &lifecycle.Entity{
		ID:          u.ID,
		Kind:        lifecycle.KindUser,
		DisplayName: u.FullName,
		State:       lifecycle.State(u.Status),
		OwnerScope:  u.HospitalID,
		Version:     u.Version,
	}
}
