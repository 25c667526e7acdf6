package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// Quote handles POST /api/quotes. Read-only price preview, no calendar mutation.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req request.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pricing, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "quote stay")
		return
	}

	utils.ResponseSuccess(w, "success", pricing)
}

// Submit handles POST /api/bookings. Guest identity comes from the upstream
// gateway via the X-Guest-ID header; authentication itself lives there.
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get("X-Guest-ID")
	if guestID == "" {
		utils.ResponseUnauthorized(w, "Guest identity required")
		return
	}

	var req request.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Submit(r.Context(), guestID, &req, time.Now().UTC())
	if err != nil {
		handleServiceError(w, h.log, err, "submit booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// GetByReference handles GET /api/bookings/reference/{reference}
func (h *BookingHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		utils.ResponseBadRequest(w, "Booking reference is required", nil)
		return
	}

	booking, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by reference")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Confirm handles PUT /api/bookings/{id}/confirm. Called by the payment
// collaborator once authorization succeeds; idempotent.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.Confirm(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Cancel handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, &req, time.Now().UTC())
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CheckIn handles PUT /api/bookings/{id}/check-in
func (h *BookingHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.CheckIn(r.Context(), bookingID, time.Now().UTC())
	if err != nil {
		handleServiceError(w, h.log, err, "check in booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CheckOut handles PUT /api/bookings/{id}/check-out
func (h *BookingHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.CheckOut(r.Context(), bookingID, time.Now().UTC())
	if err != nil {
		handleServiceError(w, h.log, err, "check out booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Complete handles PUT /api/bookings/{id}/complete
func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.Complete(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// Dispute handles PUT /api/bookings/{id}/dispute
func (h *BookingHandler) Dispute(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.Dispute(r.Context(), bookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "dispute booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ListByRental handles GET /api/rentals/{id}/bookings (host view)
func (h *BookingHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	rentalID := chi.URLParam(r, "id")
	if rentalID == "" {
		utils.ResponseBadRequest(w, "Rental ID is required", nil)
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.ListByRental(r.Context(), rentalID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list rental bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// ListMine handles GET /api/guest/bookings. The caller's booking history,
// keyed off the gateway-supplied identity header.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	guestID := r.Header.Get("X-Guest-ID")
	if guestID == "" {
		utils.ResponseUnauthorized(w, "Guest identity required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.ListByGuest(r.Context(), guestID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list guest bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}
