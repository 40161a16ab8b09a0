package models

import "time"

type Venue struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:150;not null" json:"name"`
	Address  string `gorm:"size:255;not null" json:"address"`
	District string `gorm:"size:100" json:"district"`
	PhotoURL string `gorm:"size:500" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
