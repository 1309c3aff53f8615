package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions is the closed transition table:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled,
// completed and cancelled are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
}

// IsValid reports whether s is one of the known statuses.
func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

// IsActive reports whether the appointment still occupies its window.
// Only cancellation releases capacity.
func (s AppointmentStatus) IsActive() bool {
	return s != AppointmentStatusCancelled
}

// CanTransitionTo reports whether the transition table permits s -> next.
// A same-status transition is not listed here; callers treat it as a no-op.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the states reachable from s.
func (s AppointmentStatus) AllowedTransitions() []AppointmentStatus {
	return appointmentTransitions[s]
}

// VisitType classifies an appointment by the patient's history
type VisitType string

const (
	VisitTypeFirst  VisitType = "first_visit"
	VisitTypeReturn VisitType = "return_visit"
)

// DetermineVisitType classifies a new appointment from whether the patient
// has any completed appointment. Computed once at booking, never revised.
func DetermineVisitType(hasCompletedVisit bool) VisitType {
	if hasCompletedVisit {
		return VisitTypeReturn
	}
	return VisitTypeFirst
}

// Appointment represents a booked treatment window. EndAt is captured at
// creation from the treatment duration; later treatment edits do not touch
// existing rows. Appointments are never deleted, only cancelled.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	TreatmentID uuid.UUID         `gorm:"type:uuid;not null;index" json:"treatment_id"`
	StartAt     time.Time         `gorm:"not null;index" json:"start_at"`
	EndAt       time.Time         `gorm:"not null" json:"end_at"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	VisitType   VisitType         `gorm:"type:varchar(20);not null" json:"visit_type"`
	Memo        string            `gorm:"type:text" json:"memo,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor    Doctor    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Treatment Treatment `gorm:"foreignKey:TreatmentID" json:"treatment,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the appointment is completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
