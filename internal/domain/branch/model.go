package branch

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// Branch maps to the branch table. A branch belongs to exactly one hospital,
// which is the scope boundary for non-global actors.
type Branch struct {
	ID           uuid.UUID `db:"id" json:"id"`
	HospitalID   int64     `db:"hospital_id" json:"hospital_id"`
	Name         string    `db:"name" json:"name"`
	Code         *string   `db:"code" json:"code,omitempty"`
	AddressLine1 *string   `db:"address_line1" json:"address_line1,omitempty"`
	City         *string   `db:"city" json:"city,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Status       string    `db:"status" json:"status"`
	Version      int       `db:"version" json:"version"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Lifecycle returns the engine's view of the branch.
func (b *Branch) Lifecycle() *lifecycle.Entity {
	return &lifecycle.Entity{
		ID:          b.ID,
		Kind:        lifecycle.KindBranch,
		DisplayName: b.Name,
		State:       lifecycle.State(b.Status),
		OwnerScope:  b.HospitalID,
		Version:     b.Version,
	}
}
