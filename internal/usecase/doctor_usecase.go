package usecase

import (
	"context"
	"errors"

	"felanocare-backend/internal/converter"
	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/domain/repository"
	"felanocare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorProfileNotFound = errors.New("doctor profile not found")

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.DoctorProfileRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
	}
}

// ListDoctors returns all active doctors for the public booking directory.
func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.userRepo.FindDoctors(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToListResponse(doctors), nil
}

func (u *doctorUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if user == nil || !user.IsDoctor() {
		return nil, ErrDoctorProfileNotFound
	}

	return converter.UserToResponse(user, entity.RoleDoctor), nil
}

// UpdateProfile updates the doctor's user and profile rows in one transaction.
func (u *doctorUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", userID, err)
		return nil, err
	}
	if user == nil || !user.IsDoctor() {
		return nil, ErrDoctorProfileNotFound
	}

	profile, err := u.profileRepo.FindByUserID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorProfileNotFound
	}

	if req.FullName != "" {
		user.FullName = req.FullName
		if err := u.userRepo.Update(tx, user); err != nil {
			u.log.Warnf("Failed to update doctor name %s: %+v", userID, err)
			return nil, err
		}
	}
	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}

	if err := u.profileRepo.Update(ctx, tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile %s: %+v", userID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &userID, entity.AuditActionProfileUpdate, entity.JSON{"role": entity.RoleDoctor})

	user.DoctorProfile = profile
	return converter.UserToResponse(user, entity.RoleDoctor), nil
}
