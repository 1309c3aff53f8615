package entity

import (
	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Evaluated by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	StartDate   string // Format: YYYY-MM-DD (inclusive)
	EndDate     string // Format: YYYY-MM-DD (inclusive)
	DoctorID    *uuid.UUID
	TreatmentID *uuid.UUID
	Status      *AppointmentStatus
}
