package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/lifecycle"
)

// Patient maps to the patient table. HospitalID is the ownership scope for
// authorization; BranchID is informational and survives branch removal as NULL.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	MRN        string     `db:"mrn" json:"mrn"`
	HospitalID int64      `db:"hospital_id" json:"hospital_id"`
	BranchID   *uuid.UUID `db:"branch_id" json:"branch_id,omitempty"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Gender     *string    `db:"gender" json:"gender,omitempty"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Phone      *string    `db:"phone" json:"phone,omitempty"`
	Status     string     `db:"status" json:"status"`
	Version    int        `db:"version" json:"version"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// DisplayName is the name a caller must retype to confirm a soft transition.
func (p *Patient) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Lifecycle returns the engine's view of the patient.
func (p *Patient) Lifecycle() *lifecycle.Entity {
	return &lifecycle.Entity{
		ID:          p.ID,
		Kind:        lifecycle.KindPatient,
		DisplayName: p.DisplayName(),
		State:       lifecycle.State(p.Status),
		OwnerScope:  p.HospitalID,
		Version:     p.Version,
	}
}
