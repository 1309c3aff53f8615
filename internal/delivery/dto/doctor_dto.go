package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Specialty string `json:"specialty" validate:"required,min=1,max=100"`
}

type UpdateDoctorRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=100"`
	Specialty string `json:"specialty" validate:"required,min=1,max=100"`
	IsActive  *bool  `json:"is_active" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int64            `json:"total"`
}
