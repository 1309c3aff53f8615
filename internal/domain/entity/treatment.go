package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Treatment represents a bookable service. DurationMinutes must be a
// positive multiple of the capacity unit (30 min); administrative edits do
// not retroactively change existing appointments, whose EndAt is stored.
type Treatment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	IsActive        bool            `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:TreatmentID" json:"appointments,omitempty"`
}

func (Treatment) TableName() string {
	return "treatments"
}

// Duration returns the treatment duration as a time.Duration.
func (t *Treatment) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}
