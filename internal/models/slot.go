package models

import "time"

// Slot is one fixed-width bookable window of a court on a date.
// StartTime and EndTime are "HH:MM" wall-clock values.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CourtID uint      `gorm:"not null;index:idx_slot_court_date,priority:1" json:"court_id"`
	Date    time.Time `gorm:"type:date;not null;index:idx_slot_court_date,priority:2" json:"date"`

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Status    string `gorm:"size:20;not null;default:'available';index" json:"status"`
	BookingID *uint  `json:"booking_id"`

	HeldBy    *uint      `json:"held_by,omitempty"`
	HeldUntil *time.Time `json:"held_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
