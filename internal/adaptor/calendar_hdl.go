package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CalendarHandler struct {
	service usecase.CalendarService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

// GetRange handles GET /api/rentals/{id}/calendar?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *CalendarHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := h.rentalID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	start, err := time.Parse("2006-01-02", query.Get("start"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid start date", nil)
		return
	}
	end, err := time.Parse("2006-01-02", query.Get("end"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid end date", nil)
		return
	}

	days, err := h.service.GetRange(r.Context(), rentalID, start, end)
	if err != nil {
		handleServiceError(w, h.log, err, "get calendar range")
		return
	}

	utils.ResponseSuccess(w, "success", response.CalendarRangeToResponse(days))
}

// BlockDates handles POST /api/rentals/{id}/calendar/blocks (host)
func (h *CalendarHandler) BlockDates(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := h.rentalID(w, r)
	if !ok {
		return
	}

	var req request.BlockDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date in list", nil)
		return
	}

	if err := h.service.SetManualBlock(r.Context(), rentalID, dates, req.Reason); err != nil {
		handleServiceError(w, h.log, err, "block dates")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// UnblockDates handles DELETE /api/rentals/{id}/calendar/blocks (host)
func (h *CalendarHandler) UnblockDates(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := h.rentalID(w, r)
	if !ok {
		return
	}

	var req request.UnblockDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	dates, err := parseDates(req.Dates)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date in list", nil)
		return
	}

	if err := h.service.ClearManualBlock(r.Context(), rentalID, dates); err != nil {
		handleServiceError(w, h.log, err, "unblock dates")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// SetOverride handles PUT /api/rentals/{id}/calendar/days (host)
func (h *CalendarHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	rentalID, ok := h.rentalID(w, r)
	if !ok {
		return
	}

	var req request.DayOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date", nil)
		return
	}

	changes := entity.DayChangeset{
		PriceOverride: req.Price,
		MinimumStay:   req.MinimumStay,
	}
	if err := h.service.SetOverride(r.Context(), rentalID, date, changes); err != nil {
		handleServiceError(w, h.log, err, "set day override")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

func (h *CalendarHandler) rentalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.ResponseBadRequest(w, "Rental ID is required", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid rental ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, len(raw))
	for i, s := range raw {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}
	return dates, nil
}
