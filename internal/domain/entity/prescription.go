package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PrescriptionStatus represents the status of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusActive    PrescriptionStatus = "active"
	PrescriptionStatusFulfilled PrescriptionStatus = "fulfilled"
	PrescriptionStatusExpired   PrescriptionStatus = "expired"
)

// ErrInvalidPrescriptionTransition is returned when a status change is not
// allowed by the prescription state machine.
var ErrInvalidPrescriptionTransition = errors.New("invalid prescription status transition")

// PrescribedMedicine is one line item on a prescription. Price is optional
// and treated as zero when absent.
type PrescribedMedicine struct {
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Frequency string          `json:"frequency"`
	Duration  string          `json:"duration"`
	Price     decimal.Decimal `json:"price"`
}

// PrescribedMedicines is stored as a JSONB column.
type PrescribedMedicines []PrescribedMedicine

// Value implements driver.Valuer
func (m PrescribedMedicines) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner
func (m *PrescribedMedicines) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}
	return json.Unmarshal(bytes, m)
}

// Prescription represents medicines prescribed by a doctor to a patient.
type Prescription struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DoctorName   string              `gorm:"type:varchar(255);not null" json:"doctor_name"`
	PatientID    string              `gorm:"type:varchar(64);not null;index" json:"patient_id"`
	PatientName  string              `gorm:"type:varchar(255);not null" json:"patient_name"`
	Medicines    PrescribedMedicines `gorm:"type:jsonb;not null" json:"medicines"`
	Instructions string              `gorm:"type:text" json:"instructions,omitempty"`
	Status       PrescriptionStatus  `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	CreatedAt    time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time           `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsTerminal reports whether no further status change is allowed.
func (p *Prescription) IsTerminal() bool {
	return p.Status == PrescriptionStatusFulfilled || p.Status == PrescriptionStatusExpired
}

// CanTransitionTo reports whether the state machine allows moving to target.
// The only legal transitions are active -> fulfilled and active -> expired.
func (p *Prescription) CanTransitionTo(target PrescriptionStatus) bool {
	if p.Status != PrescriptionStatusActive {
		return false
	}
	return target == PrescriptionStatusFulfilled || target == PrescriptionStatusExpired
}

// TransitionTo applies the status change after checking the transition table.
func (p *Prescription) TransitionTo(target PrescriptionStatus) error {
	if !p.CanTransitionTo(target) {
		return ErrInvalidPrescriptionTransition
	}
	p.Status = target
	return nil
}

// Total returns the derived monetary total: the sum of line-item prices.
// It is never stored.
func (p *Prescription) Total() decimal.Decimal {
	total := decimal.Zero
	for _, med := range p.Medicines {
		total = total.Add(med.Price)
	}
	return total
}

// ValidPrescriptionStatus reports whether s names a known status.
func ValidPrescriptionStatus(s string) bool {
	switch PrescriptionStatus(s) {
	case PrescriptionStatusActive, PrescriptionStatusFulfilled, PrescriptionStatusExpired:
		return true
	}
	return false
}
