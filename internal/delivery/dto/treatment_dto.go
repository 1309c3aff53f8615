package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateTreatmentRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Description     string          `json:"description" validate:"max=500"`
}

type UpdateTreatmentRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=1"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	Description     string          `json:"description" validate:"max=500"`
	IsActive        *bool           `json:"is_active" validate:"required"`
}

// Response DTOs

type TreatmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	Description     string          `json:"description,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type TreatmentListResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
	Total      int64               `json:"total"`
}
