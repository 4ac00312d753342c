package repository

import (
	"context"

	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	// UpdateStatus writes the new status only when the stored status still
	// equals expected. Returns affected rows: 0 means a concurrent writer won.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.AppointmentStatus) (int64, error)
}
