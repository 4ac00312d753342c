package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type appointmentFixture struct {
	usecase  AppointmentUsecase
	repo     *mockAppointmentRepo
	notifier *mockNotifier
	doctor   *entity.User
	patient  *entity.User
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	userRepo := newMockUserRepo()
	doctor := userRepo.add(&entity.User{FullName: "Dr. Sarah Chen", RoleID: entity.RoleIDDoctor})
	patient := userRepo.add(&entity.User{FullName: "Budi Santoso", RoleID: entity.RoleIDPatient})

	repo := newMockAppointmentRepo()
	notifier := &mockNotifier{}
	usecase := NewAppointmentUsecase(testDB(), testLogger(), repo, userRepo, notifier, &mockAudit{})

	return &appointmentFixture{
		usecase:  usecase,
		repo:     repo,
		notifier: notifier,
		doctor:   doctor,
		patient:  patient,
	}
}

func (f *appointmentFixture) patientCtx() context.Context {
	return middleware.WithUser(context.Background(), f.patient.ID, entity.RoleIDPatient)
}

func (f *appointmentFixture) doctorCtx() context.Context {
	return middleware.WithUser(context.Background(), f.doctor.ID, entity.RoleIDDoctor)
}

func (f *appointmentFixture) book(t *testing.T) *dto.AppointmentResponse {
	t.Helper()
	appointment, err := f.usecase.Book(f.patientCtx(), &dto.BookAppointmentRequest{
		DoctorID: f.doctor.ID.String(),
		Date:     time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:     "10:30",
		Reason:   "Recurring headaches",
	})
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	return appointment
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.book(t)

	if appointment.Status != string(entity.AppointmentStatusPending) {
		t.Errorf("status = %s, want pending", appointment.Status)
	}
	if appointment.DoctorName != f.doctor.FullName {
		t.Errorf("doctor name = %q, want %q", appointment.DoctorName, f.doctor.FullName)
	}
	if appointment.PatientName != f.patient.FullName {
		t.Errorf("patient name = %q, want %q", appointment.PatientName, f.patient.FullName)
	}
	// Both parties get a change event
	if got := len(f.notifier.published()); got != 2 {
		t.Errorf("published events = %d, want 2", got)
	}
}

func TestBookRejectsPastDate(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(f.patientCtx(), &dto.BookAppointmentRequest{
		DoctorID: f.doctor.ID.String(),
		Date:     "2020-01-01",
		Time:     "10:30",
		Reason:   "Checkup",
	})
	if err != ErrAppointmentPast {
		t.Fatalf("err = %v, want ErrAppointmentPast", err)
	}
}

func TestBookRejectsNonDoctor(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Book(f.patientCtx(), &dto.BookAppointmentRequest{
		DoctorID: f.patient.ID.String(),
		Date:     time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02"),
		Time:     "10:30",
		Reason:   "Checkup",
	})
	if err != ErrDoctorNotFound {
		t.Fatalf("err = %v, want ErrDoctorNotFound", err)
	}
}

func TestDoctorConfirmsThenCompletes(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t)

	confirmed, err := f.usecase.SetStatus(f.doctorCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != "confirmed" {
		t.Errorf("status = %s, want confirmed", confirmed.Status)
	}

	completed, err := f.usecase.SetStatus(f.doctorCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != "completed" {
		t.Errorf("status = %s, want completed", completed.Status)
	}
}

func TestPendingCannotJumpToCompleted(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t)

	_, err := f.usecase.SetStatus(f.doctorCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	if !errors.Is(err, entity.ErrInvalidAppointmentTransition) {
		t.Fatalf("err = %v, want ErrInvalidAppointmentTransition", err)
	}
}

func TestTerminalStatusesRejectUpdates(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t)

	if _, err := f.usecase.SetStatus(f.doctorCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, status := range []string{"pending", "confirmed", "completed", "cancelled"} {
		_, err := f.usecase.SetStatus(f.doctorCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: status})
		if !errors.Is(err, entity.ErrInvalidAppointmentTransition) {
			t.Errorf("cancelled -> %s: err = %v, want ErrInvalidAppointmentTransition", status, err)
		}
	}
}

func TestPatientMayOnlyCancel(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t)

	_, err := f.usecase.SetStatus(f.patientCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "confirmed"})
	if !errors.Is(err, entity.ErrInvalidAppointmentTransition) {
		t.Fatalf("confirm as patient: err = %v, want ErrInvalidAppointmentTransition", err)
	}

	cancelled, err := f.usecase.SetStatus(f.patientCtx(), booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	if err != nil {
		t.Fatalf("cancel as patient: %v", err)
	}
	if cancelled.Status != "cancelled" {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}
}

func TestSetStatusRejectsForeignDoctor(t *testing.T) {
	f := newAppointmentFixture(t)
	booked := f.book(t)

	otherDoctor := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDDoctor)
	_, err := f.usecase.SetStatus(otherDoctor, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "confirmed"})
	if !errors.Is(err, ErrAppointmentNotOwned) {
		t.Fatalf("err = %v, want ErrAppointmentNotOwned", err)
	}
}

func TestListMineSplitsByRole(t *testing.T) {
	f := newAppointmentFixture(t)
	f.book(t)

	patientList, err := f.usecase.ListMine(f.patientCtx())
	if err != nil {
		t.Fatalf("ListMine patient: %v", err)
	}
	if patientList.Total != 1 {
		t.Errorf("patient total = %d, want 1", patientList.Total)
	}

	doctorList, err := f.usecase.ListMine(f.doctorCtx())
	if err != nil {
		t.Fatalf("ListMine doctor: %v", err)
	}
	if doctorList.Total != 1 {
		t.Errorf("doctor total = %d, want 1", doctorList.Total)
	}

	stranger := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDPatient)
	strangerList, err := f.usecase.ListMine(stranger)
	if err != nil {
		t.Fatalf("ListMine stranger: %v", err)
	}
	if strangerList.Total != 0 {
		t.Errorf("stranger total = %d, want 0", strangerList.Total)
	}
}
