package dto

import "time"

// Request DTOs

type CreateCapacitySlotRequest struct {
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	MaxCapacity int    `json:"max_capacity" validate:"required,min=1"`
	DayOfWeek   *int   `json:"day_of_week" validate:"omitempty,min=0,max=6"`
}

type UpdateCapacitySlotRequest struct {
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
	MaxCapacity int    `json:"max_capacity" validate:"required,min=1"`
	DayOfWeek   *int   `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	IsActive    *bool  `json:"is_active" validate:"required"`
}

// Response DTOs

type CapacitySlotResponse struct {
	ID          int       `json:"id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
	DayOfWeek   *int      `json:"day_of_week"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CapacitySlotListResponse struct {
	CapacitySlots []CapacitySlotResponse `json:"capacity_slots"`
	Total         int                    `json:"total"`
}
