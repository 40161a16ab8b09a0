package dto

import (
	"github.com/BruksfildServices01/court-reservations/internal/models"
	"github.com/BruksfildServices01/court-reservations/internal/timezone"
)

type SlotDTO struct {
	ID        uint   `json:"id"`
	CourtID   uint   `json:"court_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func FromSlot(s models.Slot) SlotDTO {
	return SlotDTO{
		ID:        s.ID,
		CourtID:   s.CourtID,
		Date:      timezone.FormatDate(s.Date),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
	}
}

func FromSlots(slots []models.Slot) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromSlot(s))
	}
	return out
}
