package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ErrInvalidAppointmentTransition is returned when a status change is not
// allowed by the appointment state machine.
var ErrInvalidAppointmentTransition = errors.New("invalid appointment status transition")

// appointmentTransitions is the enforced transition table:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
// completed and cancelled are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// Appointment represents a patient booking with a doctor.
// Patient and doctor display names are denormalized at booking time.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientName string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	DoctorName  string            `gorm:"type:varchar(255);not null" json:"doctor_name"`
	Date        time.Time         `gorm:"type:date;not null" json:"date"`
	Time        string            `gorm:"type:varchar(10);not null" json:"time"`
	Reason      string            `gorm:"type:text;not null" json:"reason"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether no further status change is allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusCompleted || a.Status == AppointmentStatusCancelled
}

// CanTransitionTo reports whether the state machine allows moving to target.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo applies the status change after checking the transition table.
func (a *Appointment) TransitionTo(target AppointmentStatus) error {
	if !a.CanTransitionTo(target) {
		return ErrInvalidAppointmentTransition
	}
	a.Status = target
	return nil
}

// ValidAppointmentStatus reports whether s names a known status.
func ValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}
