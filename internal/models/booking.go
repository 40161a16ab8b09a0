package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking snapshots the slot and court price at creation time.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID  uint `gorm:"not null;index" json:"user_id"`
	CourtID uint `gorm:"not null;index" json:"court_id"`
	SlotID  uint `gorm:"not null;uniqueIndex" json:"slot_id"`

	Date      time.Time `gorm:"type:date;not null" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	Status        string          `gorm:"size:20;not null;default:'confirmed';index" json:"status"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	PaidAt *time.Time `json:"paid_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
