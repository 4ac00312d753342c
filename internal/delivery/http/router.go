package http

import (
	"net/http"

	"felanocare-backend/internal/delivery/http/handler"
	"felanocare-backend/internal/delivery/http/middleware"
	"felanocare-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	medicineHandler     *handler.MedicineHandler
	cartHandler         *handler.CartHandler
	appointmentHandler  *handler.AppointmentHandler
	prescriptionHandler *handler.PrescriptionHandler
	aiHandler           *handler.AIHandler
	auditLogHandler     *handler.AuditLogHandler
	streamHandler       *handler.StreamHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	medicineHandler *handler.MedicineHandler,
	cartHandler *handler.CartHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	aiHandler *handler.AIHandler,
	auditLogHandler *handler.AuditLogHandler,
	streamHandler *handler.StreamHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		medicineHandler:     medicineHandler,
		cartHandler:         cartHandler,
		appointmentHandler:  appointmentHandler,
		prescriptionHandler: prescriptionHandler,
		aiHandler:           aiHandler,
		auditLogHandler:     auditLogHandler,
		streamHandler:       streamHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalog and directory
	api.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/medicines", r.medicineHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/medicines/{id}", r.medicineHandler.GetByID).Methods(http.MethodGet)

	// Authenticated routes shared by doctors and patients
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/appointments", r.appointmentHandler.GetMine).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/stream", r.streamHandler.StreamAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/prescriptions", r.prescriptionHandler.GetMine).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/stream", r.streamHandler.StreamPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/ai/consult", r.aiHandler.Consult).Methods(http.MethodPost)
	protected.HandleFunc("/ai/meal-plans", r.aiHandler.GenerateMealPlan).Methods(http.MethodPost)
	protected.HandleFunc("/ai/meal-plans", r.aiHandler.GetMealPlans).Methods(http.MethodGet)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequireRole(entity.RoleIDPatient))

	patient.HandleFunc("/patient/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/patient/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/cart", r.cartHandler.GetCart).Methods(http.MethodGet)
	patient.HandleFunc("/cart/stream", r.streamHandler.StreamCart).Methods(http.MethodGet)
	patient.HandleFunc("/cart/items", r.cartHandler.AddItem).Methods(http.MethodPost)
	patient.HandleFunc("/cart/items/{medicineId}", r.cartHandler.ChangeQuantity).Methods(http.MethodPatch)
	patient.HandleFunc("/cart/items/{medicineId}", r.cartHandler.RemoveItem).Methods(http.MethodDelete)

	// Doctor routes
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireRole(entity.RoleIDDoctor))

	doctor.HandleFunc("/doctor/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/doctor/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions/{id}/status", r.prescriptionHandler.UpdateStatus).Methods(http.MethodPatch)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/medicines", r.medicineHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAll).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
