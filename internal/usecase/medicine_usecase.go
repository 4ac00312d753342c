package usecase

import (
	"context"
	"errors"

	"felanocare-backend/internal/converter"
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/domain/repository"
	"felanocare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrMedicineNotFound      = errors.New("medicine not found")
	ErrMedicineAlreadyExists = errors.New("medicine already exists")
)

type MedicineUsecase interface {
	List(ctx context.Context, page, limit int) (*dto.MedicineListResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicineUsecase struct {
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
	auditService service.AuditService
}

func NewMedicineUsecase(
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	auditService service.AuditService,
) MedicineUsecase {
	return &medicineUsecase{
		log:          log,
		medicineRepo: medicineRepo,
		auditService: auditService,
	}
}

// List returns one catalog page plus the total row count for pagination meta.
func (u *medicineUsecase) List(ctx context.Context, page, limit int) (*dto.MedicineListResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	medicines, total, err := u.medicineRepo.FindAll(ctx, limit, (page-1)*limit)
	if err != nil {
		u.log.Warnf("Failed to list medicines: %+v", err)
		return nil, 0, err
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
	}, total, nil
}

func (u *medicineUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
	}

	if err := u.medicineRepo.Create(ctx, medicine); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrMedicineAlreadyExists
		}
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorFromContext(ctx), entity.AuditActionMedicineCreate, entity.JSON{"medicine_id": medicine.ID.String(), "name": medicine.Name})
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	medicine.Name = req.Name
	medicine.Description = req.Description
	medicine.Price = req.Price
	medicine.Image = req.Image
	medicine.Stock = req.Stock

	if err := u.medicineRepo.Update(ctx, medicine); err != nil {
		u.log.Warnf("Failed to update medicine %s: %+v", id, err)
		return nil, err
	}

	u.auditService.Record(ctx, actorFromContext(ctx), entity.AuditActionMedicineUpdate, entity.JSON{"medicine_id": id.String()})
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return err
	}
	if medicine == nil {
		return ErrMedicineNotFound
	}

	if err := u.medicineRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete medicine %s: %+v", id, err)
		return err
	}

	u.auditService.Record(ctx, actorFromContext(ctx), entity.AuditActionMedicineDelete, entity.JSON{"medicine_id": id.String()})
	return nil
}

// actorFromContext resolves the acting user for audit records, nil when the
// call carries no authenticated identity.
func actorFromContext(ctx context.Context) *uuid.UUID {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}
