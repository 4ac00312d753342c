package usecase

import (
	"context"
	"io"
	"sync"

	"felanocare-backend/internal/domain/entity"
	"felanocare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the usecase tests.

func testDB() *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(db *gorm.DB, user *entity.User) error {
	m.add(user)
	return nil
}

func (m *mockUserRepo) Update(db *gorm.DB, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindDoctors(ctx context.Context, db *gorm.DB) ([]entity.User, error) {
	var doctors []entity.User
	for _, user := range m.users {
		if user.IsDoctor() {
			doctors = append(doctors, *user)
		}
	}
	return doctors, nil
}

type mockAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	m.appointments[appointment.ID] = &stored
	return nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, nil
	}
	copy := *appointment
	return &copy, nil
}

func (m *mockAppointmentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appointment := range m.appointments {
		if appointment.PatientID == patientID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID {
			result = append(result, *appointment)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.AppointmentStatus) (int64, error) {
	appointment, ok := m.appointments[id]
	if !ok || appointment.Status != expected {
		return 0, nil
	}
	appointment.Status = next
	return 1, nil
}

type mockPrescriptionRepo struct {
	prescriptions map[uuid.UUID]*entity.Prescription
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{prescriptions: make(map[uuid.UUID]*entity.Prescription)}
}

func (m *mockPrescriptionRepo) Create(ctx context.Context, prescription *entity.Prescription) error {
	if prescription.ID == uuid.Nil {
		prescription.ID = uuid.New()
	}
	stored := *prescription
	m.prescriptions[prescription.ID] = &stored
	return nil
}

func (m *mockPrescriptionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Prescription, error) {
	prescription, ok := m.prescriptions[id]
	if !ok {
		return nil, nil
	}
	copy := *prescription
	return &copy, nil
}

func (m *mockPrescriptionRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Prescription, error) {
	var result []entity.Prescription
	for _, prescription := range m.prescriptions {
		if prescription.DoctorID == doctorID {
			result = append(result, *prescription)
		}
	}
	return result, nil
}

func (m *mockPrescriptionRepo) FindByPatientID(ctx context.Context, patientID string) ([]entity.Prescription, error) {
	var result []entity.Prescription
	for _, prescription := range m.prescriptions {
		if prescription.PatientID == patientID {
			result = append(result, *prescription)
		}
	}
	return result, nil
}

func (m *mockPrescriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.PrescriptionStatus) (int64, error) {
	prescription, ok := m.prescriptions[id]
	if !ok || prescription.Status != expected {
		return 0, nil
	}
	prescription.Status = next
	return 1, nil
}

type cartKey struct {
	userID     uuid.UUID
	medicineID uuid.UUID
}

type mockCartRepo struct {
	mu    sync.Mutex
	items map[cartKey]*entity.CartItem
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{items: make(map[cartKey]*entity.CartItem)}
}

func (m *mockCartRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []entity.CartItem
	for key, item := range m.items {
		if key.userID == userID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockCartRepo) FindItem(ctx context.Context, userID, medicineID uuid.UUID) (*entity.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[cartKey{userID, medicineID}]
	if !ok {
		return nil, nil
	}
	copy := *item
	return &copy, nil
}

func (m *mockCartRepo) Upsert(ctx context.Context, item *entity.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := cartKey{item.UserID, item.MedicineID}
	if existing, ok := m.items[key]; ok {
		existing.Quantity++
		return nil
	}
	stored := *item
	m.items[key] = &stored
	return nil
}

func (m *mockCartRepo) AddQuantity(ctx context.Context, userID, medicineID uuid.UUID, delta int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[cartKey{userID, medicineID}]
	if !ok || item.Quantity+delta < 1 {
		return 0, nil
	}
	item.Quantity += delta
	return 1, nil
}

func (m *mockCartRepo) Delete(ctx context.Context, userID, medicineID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, cartKey{userID, medicineID})
	return nil
}

type mockMedicineRepo struct {
	medicines map[uuid.UUID]*entity.Medicine
}

func newMockMedicineRepo() *mockMedicineRepo {
	return &mockMedicineRepo{medicines: make(map[uuid.UUID]*entity.Medicine)}
}

func (m *mockMedicineRepo) add(medicine *entity.Medicine) *entity.Medicine {
	if medicine.ID == uuid.Nil {
		medicine.ID = uuid.New()
	}
	m.medicines[medicine.ID] = medicine
	return medicine
}

func (m *mockMedicineRepo) Create(ctx context.Context, medicine *entity.Medicine) error {
	m.add(medicine)
	return nil
}

func (m *mockMedicineRepo) FindAll(ctx context.Context, limit, offset int) ([]entity.Medicine, int64, error) {
	var result []entity.Medicine
	for _, medicine := range m.medicines {
		result = append(result, *medicine)
	}
	return result, int64(len(result)), nil
}

func (m *mockMedicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error) {
	return m.medicines[id], nil
}

func (m *mockMedicineRepo) Update(ctx context.Context, medicine *entity.Medicine) error {
	m.medicines[medicine.ID] = medicine
	return nil
}

func (m *mockMedicineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.medicines, id)
	return nil
}

type mockMealPlanRepo struct {
	plans []entity.MealPlan
}

func (m *mockMealPlanRepo) Create(ctx context.Context, plan *entity.MealPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	m.plans = append(m.plans, *plan)
	return nil
}

func (m *mockMealPlanRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.MealPlan, error) {
	var result []entity.MealPlan
	for _, plan := range m.plans {
		if plan.UserID == userID {
			result = append(result, plan)
		}
	}
	return result, nil
}

// mockNotifier records published change events.
type mockNotifier struct {
	mu     sync.Mutex
	events []service.ChangeEvent
}

func (m *mockNotifier) Publish(ctx context.Context, event service.ChangeEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *mockNotifier) Subscribe(ctx context.Context, collection, ownerID string) (<-chan service.ChangeEvent, func(), error) {
	events := make(chan service.ChangeEvent)
	return events, func() { close(events) }, nil
}

func (m *mockNotifier) published() []service.ChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]service.ChangeEvent(nil), m.events...)
}

// mockAudit records audit actions.
type mockAudit struct {
	actions []string
}

func (m *mockAudit) Record(ctx context.Context, userID *uuid.UUID, action string, metadata entity.JSON) {
	m.actions = append(m.actions, action)
}

// stubGenerator returns a fixed reply or error.
type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}
