package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCalendar(r chi.Router, calendarHandler *adaptor.CalendarHandler) {
	r.Route("/api/rentals/{id}/calendar", func(r chi.Router) {
		// GET /api/rentals/{id}/calendar - Day-by-day availability and pricing
		r.Get("/", calendarHandler.GetRange)

		// POST /api/rentals/{id}/calendar/blocks - Host blocks dates
		r.Post("/blocks", calendarHandler.BlockDates)

		// DELETE /api/rentals/{id}/calendar/blocks - Host unblocks dates
		r.Delete("/blocks", calendarHandler.UnblockDates)

		// PUT /api/rentals/{id}/calendar/days - Per-day price/minimum-stay override
		r.Put("/days", calendarHandler.SetOverride)
	})
}
