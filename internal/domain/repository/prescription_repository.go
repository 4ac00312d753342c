package repository

import (
	"context"

	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *entity.Prescription) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Prescription, error)
	FindByPatientID(ctx context.Context, patientID string) ([]entity.Prescription, error)
	// UpdateStatus writes the new status only when the stored status still
	// equals expected. Returns affected rows: 0 means a concurrent writer won.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.PrescriptionStatus) (int64, error)
}
