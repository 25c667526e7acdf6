package response

import (
	"rental-booking/internal/data/entity"
)

type CalendarDayResponse struct {
	Date        string  `json:"date"`
	IsAvailable bool    `json:"is_available"`
	IsBlocked   bool    `json:"is_blocked"`
	BlockReason *string `json:"block_reason,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	MinimumStay *int    `json:"minimum_stay,omitempty"`
	BookingID   *string `json:"booking_id,omitempty"`
}

func CalendarDayToResponse(d *entity.CalendarDay) CalendarDayResponse {
	resp := CalendarDayResponse{
		Date:        d.Date.Format("2006-01-02"),
		IsAvailable: d.IsAvailable,
		IsBlocked:   d.IsBlocked,
		BlockReason: d.BlockReason,
		Price:       d.PriceOverride,
		MinimumStay: d.MinimumStay,
	}
	if d.BookingID != nil {
		id := d.BookingID.String()
		resp.BookingID = &id
	}
	return resp
}

func CalendarRangeToResponse(days []*entity.CalendarDay) []CalendarDayResponse {
	out := make([]CalendarDayResponse, len(days))
	for i, day := range days {
		out[i] = CalendarDayToResponse(day)
	}
	return out
}
