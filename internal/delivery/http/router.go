package http

import (
	"net/http"

	"go-clinic-booking/internal/delivery/http/handler"
	"go-clinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	appointmentHandler      *handler.AppointmentHandler
	adminAppointmentHandler *handler.AdminAppointmentHandler
	doctorHandler           *handler.DoctorHandler
	treatmentHandler        *handler.TreatmentHandler
	capacitySlotHandler     *handler.CapacitySlotHandler
	auditLogHandler         *handler.AuditLogHandler
	corsMiddleware          *middleware.CORSMiddleware
	loggingMiddleware       *middleware.LoggingMiddleware
}

func NewRouter(
	appointmentHandler *handler.AppointmentHandler,
	adminAppointmentHandler *handler.AdminAppointmentHandler,
	doctorHandler *handler.DoctorHandler,
	treatmentHandler *handler.TreatmentHandler,
	capacitySlotHandler *handler.CapacitySlotHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		appointmentHandler:      appointmentHandler,
		adminAppointmentHandler: adminAppointmentHandler,
		doctorHandler:           doctorHandler,
		treatmentHandler:        treatmentHandler,
		capacitySlotHandler:     capacitySlotHandler,
		auditLogHandler:         auditLogHandler,
		corsMiddleware:          corsMiddleware,
		loggingMiddleware:       loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patient-facing routes
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/available-times", r.appointmentHandler.GetAvailableTimes).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPatch)
	api.HandleFunc("/doctors", r.doctorHandler.ListActiveDoctors).Methods(http.MethodGet)
	api.HandleFunc("/treatments", r.treatmentHandler.ListActiveTreatments).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()

	// Appointment management (admin)
	admin.HandleFunc("/appointments", r.adminAppointmentHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/statistics", r.adminAppointmentHandler.GetStatistics).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.adminAppointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeactivateDoctor).Methods(http.MethodDelete)

	// Treatment management (admin)
	admin.HandleFunc("/treatments", r.treatmentHandler.CreateTreatment).Methods(http.MethodPost)
	admin.HandleFunc("/treatments", r.treatmentHandler.ListTreatments).Methods(http.MethodGet)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.GetTreatment).Methods(http.MethodGet)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.UpdateTreatment).Methods(http.MethodPut)
	admin.HandleFunc("/treatments/{id}", r.treatmentHandler.DeactivateTreatment).Methods(http.MethodDelete)

	// Capacity slot management (admin)
	admin.HandleFunc("/capacity-slots", r.capacitySlotHandler.CreateCapacitySlot).Methods(http.MethodPost)
	admin.HandleFunc("/capacity-slots", r.capacitySlotHandler.ListCapacitySlots).Methods(http.MethodGet)
	admin.HandleFunc("/capacity-slots/{id}", r.capacitySlotHandler.GetCapacitySlot).Methods(http.MethodGet)
	admin.HandleFunc("/capacity-slots/{id}", r.capacitySlotHandler.UpdateCapacitySlot).Methods(http.MethodPut)
	admin.HandleFunc("/capacity-slots/{id}", r.capacitySlotHandler.DeactivateCapacitySlot).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
