package usecase

import (
	"context"
	"strconv"
	"time"

	"rental-booking/internal/data/entity"

	"go.uber.org/zap"
)

// AvailabilityChecker decides whether a date range can be booked for a rental.
// Every rejection is terminal for the request; the caller has to resubmit with
// different parameters. The request time is an explicit argument so the advance
// notice rule never depends on an implicit clock read.
type AvailabilityChecker struct {
	calendar           CalendarService
	defaultNoticeHours int
	log                *zap.Logger
}

// NewAvailabilityChecker takes the marketplace-wide advance notice default,
// used for rentals that never configured a notice window of their own.
func NewAvailabilityChecker(calendar CalendarService, defaultNoticeHours int, log *zap.Logger) *AvailabilityChecker {
	return &AvailabilityChecker{
		calendar:           calendar,
		defaultNoticeHours: defaultNoticeHours,
		log:                log.With(zap.String("service", "availability")),
	}
}

func (c *AvailabilityChecker) Check(
	ctx context.Context,
	rental *entity.Rental,
	config *entity.RentalPricingConfig,
	r entity.DateRange,
	guests entity.GuestCounts,
	requestTime time.Time,
) error {
	if !r.IsValid() {
		return rejectValidation(ReasonInvalidRange, "check_out", "check-out must be after check-in")
	}

	if guests.Countable() > rental.Rules.MaxGuests {
		return rejectValidation(ReasonGuestLimitExceeded, "guests",
			"rental sleeps at most "+strconv.Itoa(rental.Rules.MaxGuests))
	}
	if guests.Pets > 0 && !rental.Rules.PetsAllowed {
		return rejectValidation(ReasonPetsNotAllowed, "pets", "rental does not allow pets")
	}

	nights := r.Nights()

	days, err := c.calendar.GetRange(ctx, rental.ID, r.CheckIn, r.CheckOut)
	if err != nil {
		return err
	}

	// The check-in day's override takes precedence over the rental-level minimum.
	minStay := config.MinimumStay
	if override := days[0].MinimumStay; override != nil {
		minStay = *override
	}
	if nights < minStay {
		return rejectUnavailable(ReasonStayTooShort, r.CheckIn)
	}
	if config.MaximumStay != nil && nights > *config.MaximumStay {
		return rejectUnavailable(ReasonStayTooLong, r.CheckIn)
	}

	for _, day := range days {
		if !day.Bookable() {
			return rejectUnavailable(ReasonDateUnavailable, day.Date)
		}
	}

	hours := rental.Availability.AdvanceNoticeHours
	if hours == 0 {
		hours = c.defaultNoticeHours
	}
	if hours > 0 && r.CheckIn.Sub(requestTime).Hours() < float64(hours) {
		return rejectUnavailable(ReasonInsufficientNotice, r.CheckIn)
	}

	return nil
}

