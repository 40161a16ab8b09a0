package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Court struct {
	ID uint `gorm:"primaryKey" json:"id"`

	VenueID *uint  `gorm:"index" json:"venue_id"`
	Venue   *Venue `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"venue,omitempty"`

	Name         string          `gorm:"size:150;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Surface      string          `gorm:"size:50" json:"surface"`
	PricePerHour decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_per_hour"`
	PhotoURL     string          `gorm:"size:500" json:"photo_url"`
	Active       bool            `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
