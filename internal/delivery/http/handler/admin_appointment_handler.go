package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-clinic-booking/internal/delivery/dto"
	"go-clinic-booking/internal/domain/entity"
	"go-clinic-booking/internal/usecase"
	"go-clinic-booking/pkg/response"
	"go-clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminAppointmentHandler struct {
	adminUsecase usecase.AppointmentAdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminAppointmentHandler(adminUsecase usecase.AppointmentAdminUsecase, validator *validator.CustomValidator) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminAppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.adminUsecase.ListAppointments(r.Context(), query)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	totalPages := int(result.Total) / result.Limit
	if int(result.Total)%result.Limit != 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", result.Appointments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: totalPages,
	})
}

func (h *AdminAppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.adminUsecase.UpdateStatus(r.Context(), appointmentID, entity.AppointmentStatus(req.Status))
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AdminAppointmentHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	stats, err := h.adminUsecase.GetStatistics(r.Context(), query)
	if err != nil {
		response.DomainError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func parseListQuery(r *http.Request) *dto.ListAppointmentsQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return &dto.ListAppointmentsQuery{
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		DoctorID:    q.Get("doctor_id"),
		TreatmentID: q.Get("treatment_id"),
		Status:      q.Get("status"),
		Page:        page,
		Limit:       limit,
	}
}
