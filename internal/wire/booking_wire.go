package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== GUEST ROUTES ====================
	// POST /api/quotes - Price a stay without booking
	r.Post("/api/quotes", bookingHandler.Quote)

	// POST /api/bookings - Submit a booking request
	r.Post("/api/bookings", bookingHandler.Submit)

	// GET /api/guest/bookings - Caller's booking history
	r.Get("/api/guest/bookings", bookingHandler.ListMine)

	// GET /api/bookings/reference/{reference} - Look up by booking reference
	r.Get("/api/bookings/reference/{reference}", bookingHandler.GetByReference)

	// ==================== LIFECYCLE ROUTES ====================
	// Guest-facing views and the transitions called by the payment
	// collaborator and host tooling
	r.Route("/api/bookings/{id}", func(r chi.Router) {
		r.Get("/", bookingHandler.GetByID)
		r.Put("/cancel", bookingHandler.Cancel)
		r.Put("/confirm", bookingHandler.Confirm)
		r.Put("/check-in", bookingHandler.CheckIn)
		r.Put("/check-out", bookingHandler.CheckOut)
		r.Put("/complete", bookingHandler.Complete)
		r.Put("/dispute", bookingHandler.Dispute)
	})

	// ==================== HOST ROUTES ====================
	// GET /api/rentals/{id}/bookings - Bookings on a rental
	r.Get("/api/rentals/{id}/bookings", bookingHandler.ListByRental)
}
