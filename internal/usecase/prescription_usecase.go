package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"felanocare-backend/internal/converter"
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/domain/repository"
	"felanocare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionNotOwned = errors.New("prescription does not belong to you")
	ErrPrescriptionConflict = errors.New("prescription was updated concurrently, retry")
)

// CollectionPrescriptions is the change-event collection for prescriptions.
const CollectionPrescriptions = "prescriptions"

type PrescriptionUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error)
	SetStatus(ctx context.Context, prescriptionID uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	userRepo         repository.UserRepository
	notifier         service.Notifier
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	userRepo repository.UserRepository,
	notifier service.Notifier,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		auditService:     auditService,
	}
}

// Create issues a new active prescription from the logged-in doctor. When no
// patient account is linked, a synthetic patient id is generated so walk-in
// patients can still be prescribed to.
func (u *prescriptionUsecase) Create(ctx context.Context, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	doctor, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	patientID := req.PatientID
	if patientID == "" {
		patientID = fmt.Sprintf("temp-%d", time.Now().UnixMilli())
	}

	medicines := make(entity.PrescribedMedicines, len(req.Medicines))
	for i, med := range req.Medicines {
		medicines[i] = entity.PrescribedMedicine{
			Name:      med.Name,
			Dosage:    med.Dosage,
			Frequency: med.Frequency,
			Duration:  med.Duration,
			Price:     med.Price,
		}
	}

	prescription := &entity.Prescription{
		DoctorID:     doctor.ID,
		DoctorName:   doctor.FullName,
		PatientID:    patientID,
		PatientName:  req.PatientName,
		Medicines:    medicines,
		Instructions: req.Instructions,
		Status:       entity.PrescriptionStatusActive,
	}

	if err := u.prescriptionRepo.Create(ctx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.publish(ctx, prescription, "create")
	u.auditService.Record(ctx, &userID, entity.AuditActionPrescriptionCreate, entity.JSON{
		"prescription_id": prescription.ID.String(),
		"patient_id":      patientID,
	})

	u.log.Infof("Prescription created: id=%s, doctor=%s, patient=%s", prescription.ID, doctor.ID, patientID)
	return converter.PrescriptionToResponse(prescription), nil
}

// ListMine returns prescriptions visible to the caller: issued by them for
// doctors, issued to them for patients.
func (u *prescriptionUsecase) ListMine(ctx context.Context) (*dto.PrescriptionListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	var (
		prescriptions []entity.Prescription
		err           error
	)
	if roleID == entity.RoleIDDoctor {
		prescriptions, err = u.prescriptionRepo.FindByDoctorID(ctx, userID)
	} else {
		prescriptions, err = u.prescriptionRepo.FindByPatientID(ctx, userID.String())
	}
	if err != nil {
		u.log.Warnf("Failed to list prescriptions for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// SetStatus marks a prescription fulfilled or expired. Only the issuing
// doctor may move it, only out of active, and the write is a
// compare-and-swap so concurrent updates cannot both win.
func (u *prescriptionUsecase) SetStatus(ctx context.Context, prescriptionID uuid.UUID, req *dto.UpdatePrescriptionStatusRequest) (*dto.PrescriptionResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	prescription, err := u.prescriptionRepo.FindByID(ctx, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != userID {
		return nil, ErrPrescriptionNotOwned
	}

	next := entity.PrescriptionStatus(req.Status)
	expected := prescription.Status
	if err := prescription.TransitionTo(next); err != nil {
		return nil, err
	}

	affected, err := u.prescriptionRepo.UpdateStatus(ctx, prescriptionID, expected, next)
	if err != nil {
		u.log.Warnf("Failed to update prescription %s status: %+v", prescriptionID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrPrescriptionConflict
	}

	u.publish(ctx, prescription, "status")
	u.auditService.Record(ctx, &userID, entity.AuditActionPrescriptionStatus, entity.JSON{
		"prescription_id": prescriptionID.String(),
		"from":            string(expected),
		"to":              string(next),
	})

	u.log.Infof("Prescription status changed: id=%s, %s -> %s", prescriptionID, expected, next)
	return converter.PrescriptionToResponse(prescription), nil
}

// publish notifies the issuing doctor and, when the patient has a real
// account, the patient's live view as well.
func (u *prescriptionUsecase) publish(ctx context.Context, prescription *entity.Prescription, action string) {
	u.notifier.Publish(ctx, service.ChangeEvent{
		Collection: CollectionPrescriptions,
		OwnerID:    prescription.DoctorID.String(),
		Action:     action,
	})
	if _, err := uuid.Parse(prescription.PatientID); err == nil {
		u.notifier.Publish(ctx, service.ChangeEvent{
			Collection: CollectionPrescriptions,
			OwnerID:    prescription.PatientID,
			Action:     action,
		})
	}
}
