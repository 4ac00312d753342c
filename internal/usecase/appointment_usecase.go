package usecase

import (
	"context"
	"errors"
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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentPast     = errors.New("cannot book an appointment in the past")
	ErrAppointmentConflict = errors.New("appointment was updated concurrently, retry")
)

// CollectionAppointments is the change-event collection for appointments.
const CollectionAppointments = "appointments"

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context) (*dto.AppointmentListResponse, error)
	SetStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	notifier        service.Notifier
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	notifier service.Notifier,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		auditService:    auditService,
	}
}

// Book creates a pending appointment for the logged-in patient. Patient and
// doctor names are denormalized onto the row at booking time.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrAppointmentPast
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	doctor, err := u.userRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", userID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	appointment := &entity.Appointment{
		PatientID:   userID,
		DoctorID:    doctor.ID,
		PatientName: patient.FullName,
		DoctorName:  doctor.FullName,
		Date:        date,
		Time:        req.Time,
		Reason:      req.Reason,
		Status:      entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.publish(ctx, appointment, "book")
	u.auditService.Record(ctx, &userID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      doctor.ID.String(),
	})

	u.log.Infof("Appointment booked: id=%s, patient=%s, doctor=%s", appointment.ID, userID, doctor.ID)
	return converter.AppointmentToResponse(appointment), nil
}

// ListMine returns the appointments visible to the caller: their own for
// patients, their schedule for doctors.
func (u *appointmentUsecase) ListMine(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	var (
		appointments []entity.Appointment
		err          error
	)
	if roleID == entity.RoleIDDoctor {
		appointments, err = u.appointmentRepo.FindByDoctorID(ctx, userID)
	} else {
		appointments, err = u.appointmentRepo.FindByPatientID(ctx, userID)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// SetStatus moves an appointment through its workflow. Doctors may confirm,
// complete or cancel appointments on their schedule; patients may only cancel
// their own. The transition table is enforced here and the write is a
// compare-and-swap, so a stale client loses cleanly instead of clobbering.
func (u *appointmentUsecase) SetStatus(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	roleID, _ := middleware.GetRoleIDFromContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	next := entity.AppointmentStatus(req.Status)

	switch roleID {
	case entity.RoleIDDoctor:
		if appointment.DoctorID != userID {
			return nil, ErrAppointmentNotOwned
		}
	case entity.RoleIDPatient:
		if appointment.PatientID != userID {
			return nil, ErrAppointmentNotOwned
		}
		if next != entity.AppointmentStatusCancelled {
			return nil, entity.ErrInvalidAppointmentTransition
		}
	default:
		return nil, ErrAppointmentNotOwned
	}

	expected := appointment.Status
	if err := appointment.TransitionTo(next); err != nil {
		return nil, err
	}

	affected, err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, expected, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentConflict
	}

	u.publish(ctx, appointment, "status")
	u.auditService.Record(ctx, &userID, entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": appointmentID.String(),
		"from":           string(expected),
		"to":             string(next),
	})

	u.log.Infof("Appointment status changed: id=%s, %s -> %s", appointmentID, expected, next)
	return converter.AppointmentToResponse(appointment), nil
}

// publish notifies both sides of the appointment so each party's live view
// refreshes.
func (u *appointmentUsecase) publish(ctx context.Context, appointment *entity.Appointment, action string) {
	u.notifier.Publish(ctx, service.ChangeEvent{
		Collection: CollectionAppointments,
		OwnerID:    appointment.PatientID.String(),
		Action:     action,
	})
	u.notifier.Publish(ctx, service.ChangeEvent{
		Collection: CollectionAppointments,
		OwnerID:    appointment.DoctorID.String(),
		Action:     action,
	})
}
