package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"felanocare-backend/internal/delivery/dto"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type prescriptionFixture struct {
	usecase  PrescriptionUsecase
	repo     *mockPrescriptionRepo
	notifier *mockNotifier
	doctor   *entity.User
	patient  *entity.User
}

func newPrescriptionFixture(t *testing.T) *prescriptionFixture {
	t.Helper()

	userRepo := newMockUserRepo()
	doctor := userRepo.add(&entity.User{FullName: "Dr. Sarah Chen", RoleID: entity.RoleIDDoctor})
	patient := userRepo.add(&entity.User{FullName: "Budi Santoso", RoleID: entity.RoleIDPatient})

	repo := newMockPrescriptionRepo()
	notifier := &mockNotifier{}
	usecase := NewPrescriptionUsecase(testDB(), testLogger(), repo, userRepo, notifier, &mockAudit{})

	return &prescriptionFixture{
		usecase:  usecase,
		repo:     repo,
		notifier: notifier,
		doctor:   doctor,
		patient:  patient,
	}
}

func (f *prescriptionFixture) doctorCtx() context.Context {
	return middleware.WithUser(context.Background(), f.doctor.ID, entity.RoleIDDoctor)
}

func samplePrescriptionRequest(patientID, patientName string) *dto.CreatePrescriptionRequest {
	return &dto.CreatePrescriptionRequest{
		PatientID:   patientID,
		PatientName: patientName,
		Medicines: []dto.PrescribedMedicineRequest{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily", Duration: "7 days", Price: decimal.RequireFromString("12.00")},
			{Name: "Ibuprofen", Dosage: "400mg", Frequency: "as needed", Price: decimal.RequireFromString("22.50")},
			{Name: "Lozenges"},
		},
		Instructions: "Finish the full antibiotic course",
	}
}

func TestCreatePrescriptionStartsActive(t *testing.T) {
	f := newPrescriptionFixture(t)

	prescription, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest(f.patient.ID.String(), f.patient.FullName))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if prescription.Status != string(entity.PrescriptionStatusActive) {
		t.Errorf("status = %s, want active", prescription.Status)
	}
	if prescription.DoctorName != f.doctor.FullName {
		t.Errorf("doctor name = %q, want %q", prescription.DoctorName, f.doctor.FullName)
	}
	// 12.00 + 22.50 + 0 = 34.50, derived from the lines
	want := decimal.RequireFromString("34.50")
	if !prescription.Total.Equal(want) {
		t.Errorf("total = %s, want %s", prescription.Total, want)
	}
}

func TestCreatePrescriptionGeneratesSyntheticPatientID(t *testing.T) {
	f := newPrescriptionFixture(t)

	prescription, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest("", "Walk-in Patient"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !strings.HasPrefix(prescription.PatientID, "temp-") {
		t.Errorf("patient id = %q, want temp- prefix", prescription.PatientID)
	}
	// No patient-side event for an unlinked patient, doctor-side only
	if got := len(f.notifier.published()); got != 1 {
		t.Errorf("published events = %d, want 1", got)
	}
}

func TestCreatePrescriptionRejectsNonDoctor(t *testing.T) {
	f := newPrescriptionFixture(t)

	patientCtx := middleware.WithUser(context.Background(), f.patient.ID, entity.RoleIDPatient)
	_, err := f.usecase.Create(patientCtx, samplePrescriptionRequest("", "Someone"))
	if err != ErrDoctorNotFound {
		t.Fatalf("err = %v, want ErrDoctorNotFound", err)
	}
}

func TestPrescriptionStatusWorkflow(t *testing.T) {
	f := newPrescriptionFixture(t)

	created, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest(f.patient.ID.String(), f.patient.FullName))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fulfilled, err := f.usecase.SetStatus(f.doctorCtx(), created.ID, &dto.UpdatePrescriptionStatusRequest{Status: "fulfilled"})
	if err != nil {
		t.Fatalf("fulfill: %v", err)
	}
	if fulfilled.Status != "fulfilled" {
		t.Errorf("status = %s, want fulfilled", fulfilled.Status)
	}

	// Terminal: no way back to active, no expired after fulfilled
	for _, status := range []string{"active", "expired", "fulfilled"} {
		_, err := f.usecase.SetStatus(f.doctorCtx(), created.ID, &dto.UpdatePrescriptionStatusRequest{Status: status})
		if !errors.Is(err, entity.ErrInvalidPrescriptionTransition) {
			t.Errorf("fulfilled -> %s: err = %v, want ErrInvalidPrescriptionTransition", status, err)
		}
	}
}

func TestSetStatusRejectsForeignPrescription(t *testing.T) {
	f := newPrescriptionFixture(t)

	created, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest(f.patient.ID.String(), f.patient.FullName))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	otherDoctor := middleware.WithUser(context.Background(), uuid.New(), entity.RoleIDDoctor)
	_, err = f.usecase.SetStatus(otherDoctor, created.ID, &dto.UpdatePrescriptionStatusRequest{Status: "expired"})
	if !errors.Is(err, ErrPrescriptionNotOwned) {
		t.Fatalf("err = %v, want ErrPrescriptionNotOwned", err)
	}
}

func TestListMinePrescriptions(t *testing.T) {
	f := newPrescriptionFixture(t)

	if _, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest(f.patient.ID.String(), f.patient.FullName)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.usecase.Create(f.doctorCtx(), samplePrescriptionRequest("", "Walk-in Patient")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	doctorList, err := f.usecase.ListMine(f.doctorCtx())
	if err != nil {
		t.Fatalf("ListMine doctor: %v", err)
	}
	if doctorList.Total != 2 {
		t.Errorf("doctor total = %d, want 2", doctorList.Total)
	}

	patientCtx := middleware.WithUser(context.Background(), f.patient.ID, entity.RoleIDPatient)
	patientList, err := f.usecase.ListMine(patientCtx)
	if err != nil {
		t.Fatalf("ListMine patient: %v", err)
	}
	if patientList.Total != 1 {
		t.Errorf("patient total = %d, want 1", patientList.Total)
	}
}
