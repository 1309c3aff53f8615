package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID     uuid.UUID `json:"doctor_id" validate:"required"`
	TreatmentID  uuid.UUID `json:"treatment_id" validate:"required"`
	PatientName  string    `json:"patient_name" validate:"required,min=1,max=100"`
	PatientPhone string    `json:"patient_phone" validate:"required,min=7,max=20"`
	StartAt      time.Time `json:"start_at" validate:"required"`
	Memo         string    `json:"memo" validate:"max=500"`
}

type CancelAppointmentRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

type ListAppointmentsQuery struct {
	StartDate   string `validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
	DoctorID    string `validate:"omitempty,uuid"`
	TreatmentID string `validate:"omitempty,uuid"`
	Status      string `validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Page        int    `validate:"omitempty,min=1"`
	Limit       int    `validate:"omitempty,min=1,max=100"`
}

type AvailableTimesQuery struct {
	DoctorID    uuid.UUID `validate:"required"`
	TreatmentID uuid.UUID `validate:"required"`
	Date        string    `validate:"required,datetime=2006-01-02"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID          `json:"id"`
	Doctor    *DoctorResponse    `json:"doctor,omitempty"`
	Patient   *PatientResponse   `json:"patient,omitempty"`
	Treatment *TreatmentResponse `json:"treatment,omitempty"`
	StartAt   time.Time          `json:"start_at"`
	EndAt     time.Time          `json:"end_at"`
	Status    string             `json:"status"`
	VisitType string             `json:"visit_type"`
	Memo      string             `json:"memo,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}

type PatientResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

type AvailableTimesResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"available_times"`
}

type AppointmentStatisticsResponse struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByDay       map[string]int64 `json:"by_day"`
	ByHour      map[int]int64    `json:"by_hour"`
	ByVisitType map[string]int64 `json:"by_visit_type"`
}
