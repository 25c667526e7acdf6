package usecase

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingService drives the booking lifecycle:
// pending -> confirmed -> checked_in -> checked_out -> completed, with cancelled
// reachable from pending/confirmed and disputed from checked_in/checked_out.
// Time-guarded operations take their reference instant explicitly.
type BookingService interface {
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.PricingResponse, error)
	Submit(ctx context.Context, guestID string, req *request.SubmitBookingRequest, requestTime time.Time) (*response.BookingResponse, error)
	Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Cancel(ctx context.Context, bookingID string, req *request.CancelBookingRequest, at time.Time) (*response.BookingResponse, error)
	CheckIn(ctx context.Context, bookingID string, at time.Time) (*response.BookingResponse, error)
	CheckOut(ctx context.Context, bookingID string, at time.Time) (*response.BookingResponse, error)
	Complete(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	Dispute(ctx context.Context, bookingID string) (*response.BookingResponse, error)

	// Host / admin endpoints
	GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetByReference(ctx context.Context, reference string) (*response.BookingResponse, error)
	ListByRental(ctx context.Context, rentalID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	ListByGuest(ctx context.Context, guestID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo         *repository.Repository
	calendar     CalendarService
	availability *AvailabilityChecker
	pricing      *PricingEngine
	payments     PaymentGateway
	refunds      *RefundWorker
	events       EventPublisher
	log          *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	calendar CalendarService,
	availability *AvailabilityChecker,
	pricing *PricingEngine,
	payments PaymentGateway,
	refunds *RefundWorker,
	events EventPublisher,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:         repo,
		calendar:     calendar,
		availability: availability,
		pricing:      pricing,
		payments:     payments,
		refunds:      refunds,
		events:       events,
		log:          log.With(zap.String("service", "booking")),
	}
}

// Quote prices a stay without touching the calendar. Calling it twice with an
// unchanged config returns identical output.
func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.PricingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, rejectValidation("validation_failed", "", utils.FormatValidationErrors(errs))
	}

	rentalID, err := parseUUID(req.RentalID, "rental_id")
	if err != nil {
		return nil, err
	}
	r, err := parseRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	config, err := s.loadConfig(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	days, err := s.calendar.GetRange(ctx, rentalID, r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricing.Quote(QuoteInput{
		Config: config,
		Days:   days,
		Range:  r,
		Guests: guestCounts(req.Guests),
	})
	if err != nil {
		return nil, err
	}

	resp := response.PricingToResponse(pricing)
	return &resp, nil
}

// Submit runs the availability check and pricing, then creates the booking in
// pending and occupies the calendar. A rejected check returns the typed reason
// without creating anything; there is never partial state.
func (s *bookingService) Submit(ctx context.Context, guestID string, req *request.SubmitBookingRequest, requestTime time.Time) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit booking validation failed", zap.Any("errors", errs))
		return nil, rejectValidation("validation_failed", "", utils.FormatValidationErrors(errs))
	}

	// Parse IDs and dates
	guestUUID, err := parseUUID(guestID, "guest_id")
	if err != nil {
		return nil, err
	}
	rentalID, err := parseUUID(req.RentalID, "rental_id")
	if err != nil {
		return nil, err
	}
	r, err := parseRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	guests := guestCounts(req.Guests)

	rental, err := s.loadRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	config, err := s.loadConfig(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	if err := s.availability.Check(ctx, rental, config, r, guests, requestTime); err != nil {
		return nil, err
	}

	days, err := s.calendar.GetRange(ctx, rentalID, r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, err
	}

	pricing, err := s.pricing.Quote(QuoteInput{Config: config, Days: days, Range: r, Guests: guests})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Reference:     utils.GenerateBookingReference(),
		RentalID:      rentalID,
		GuestID:       guestUUID,
		OwnerID:       rental.OwnerID,
		Status:        entity.BookingStatusPending,
		CheckInDate:   r.CheckIn,
		CheckOutDate:  r.CheckOut,
		Guests:        guests,
		Pricing:       pricing,
		PaymentStatus: entity.PaymentStatusPending,
	}

	// The apply is the atomic compare-and-set: a concurrent overlapping submit
	// loses here and gets the conflict back, with nothing to roll back.
	if err := s.calendar.ApplyBooking(ctx, rentalID, r, booking.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		// Give the dates back; calendar correctness over everything else.
		if releaseErr := s.calendar.ReleaseBooking(ctx, rentalID, r, booking.ID); releaseErr != nil {
			s.log.Error("Failed to release calendar after create failure",
				zap.Error(releaseErr),
				zap.String("booking_id", booking.ID.String()),
			)
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("guest_id", guestID),
			zap.String("rental_id", req.RentalID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Authorization is asynchronous: the payment collaborator reports the result
	// out of band and Confirm is called then. A failure here never unwinds the
	// booking; the hold stays pending.
	if err := s.payments.Authorize(ctx, pricing.Total, booking.ID); err != nil {
		s.log.Warn("Payment authorization request failed",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
	}

	s.log.Info("Booking submitted",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.String("rental_id", rentalID.String()),
		zap.Int("nights", r.Nights()),
		zap.Int64("total", pricing.Total.Amount),
		zap.String("currency", string(pricing.Currency)),
	)

	return response.BookingToResponse(booking), nil
}

// Confirm moves pending -> confirmed once the payment collaborator has reported
// a successful authorization. Idempotent when already confirmed.
func (s *bookingService) Confirm(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusConfirmed {
		return response.BookingToResponse(booking), nil
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusConfirmed) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusConfirmed)
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = entity.PaymentStatusAuthorized
	booking.UpdatedAt = time.Now().UTC()

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to confirm booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("confirm booking %s: %w", bookingID, err)
	}

	s.events.Publish(ctx, entity.BookingConfirmedEvent{
		BookingID: booking.ID,
		RentalID:  booking.RentalID,
		Range:     booking.Range(),
		Total:     booking.Pricing.Total,
		At:        booking.UpdatedAt,
	})

	s.log.Info("Booking confirmed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
	)

	return response.BookingToResponse(booking), nil
}

// Cancel is valid from pending or confirmed. The refund split comes from the
// rental's cancellation policy applied to the frozen pricing total. The calendar
// is always released; refund issuance runs as a retryable background job and a
// failed refund never re-occupies the dates.
func (s *bookingService) Cancel(ctx context.Context, bookingID string, req *request.CancelBookingRequest, at time.Time) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, rejectValidation("validation_failed", "", utils.FormatValidationErrors(errs))
	}
	cancelledBy, err := parseUUID(req.CancelledBy, "cancelled_by")
	if err != nil {
		return nil, err
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCancelled) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusCancelled)
	}

	policy, err := s.repo.Policy.FindByRentalID(ctx, booking.RentalID)
	if err != nil {
		return nil, fmt.Errorf("load cancellation policy: %w", err)
	}
	if policy == nil {
		return nil, rejectNotFound("cancellation_policy", booking.RentalID.String())
	}

	quote := policy.Refund(booking.CheckInDate, at)
	total := booking.Pricing.Total
	refund := total.Percent(float64(quote.RefundPercentage))
	penalty, _ := total.Sub(refund)

	if err := s.calendar.ReleaseBooking(ctx, booking.RentalID, booking.Range(), booking.ID); err != nil {
		return nil, fmt.Errorf("release booked dates: %w", err)
	}

	booking.Status = entity.BookingStatusCancelled
	booking.UpdatedAt = time.Now().UTC()
	booking.Cancellation = &entity.CancellationRecord{
		CancelledBy:      cancelledBy,
		Reason:           req.Reason,
		CancelledAt:      at,
		RefundPercentage: quote.RefundPercentage,
		RefundAmount:     refund,
		PenaltyAmount:    penalty,
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.events.Publish(ctx, entity.BookingCancelledEvent{
		BookingID: booking.ID,
		RentalID:  booking.RentalID,
		Refund:    refund,
		Penalty:   penalty,
		Reason:    req.Reason,
		At:        at,
	})

	if refund.Amount > 0 {
		s.refunds.Enqueue(booking.ID, refund, req.Reason)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("reference", booking.Reference),
		zap.Int("refund_percentage", quote.RefundPercentage),
		zap.Int64("refund_amount", refund.Amount),
	)

	return response.BookingToResponse(booking), nil
}

// CheckIn cannot happen before the stay starts. No calendar or pricing side effects.
func (s *bookingService) CheckIn(ctx context.Context, bookingID string, at time.Time) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCheckedIn) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusCheckedIn)
	}
	if entity.Date(at).Before(booking.CheckInDate) {
		return nil, rejectValidation(ReasonTransitionTooEarly, "check_in_date",
			"check-in opens on "+booking.CheckInDate.Format("2006-01-02"))
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCheckedIn); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, entity.CheckInCompletedEvent{BookingID: booking.ID, At: at})
	return response.BookingToResponse(booking), nil
}

// CheckOut cannot happen before the check-out date.
func (s *bookingService) CheckOut(ctx context.Context, bookingID string, at time.Time) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCheckedOut) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusCheckedOut)
	}
	if entity.Date(at).Before(booking.CheckOutDate) {
		return nil, rejectValidation(ReasonTransitionTooEarly, "check_out_date",
			"check-out opens on "+booking.CheckOutDate.Format("2006-01-02"))
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCheckedOut); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, entity.CheckOutCompletedEvent{BookingID: booking.ID, At: at})
	return response.BookingToResponse(booking), nil
}

// Complete is terminal; review submission unlocks externally off this event.
func (s *bookingService) Complete(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusCompleted) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusCompleted)
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCompleted); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, entity.BookingCompletedEvent{BookingID: booking.ID, At: booking.UpdatedAt})
	return response.BookingToResponse(booking), nil
}

// Dispute freezes the lifecycle from checked_in or checked_out until external
// resolution moves the booking to completed or cancelled.
func (s *bookingService) Dispute(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(entity.BookingStatusDisputed) {
		return nil, rejectTransition(booking.Status, entity.BookingStatusDisputed)
	}

	if err := s.transition(ctx, booking, entity.BookingStatusDisputed); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, entity.BookingDisputedEvent{BookingID: booking.ID, At: booking.UpdatedAt})
	return response.BookingToResponse(booking), nil
}

// ==================== HOST / ADMIN METHODS ====================

func (s *bookingService) GetByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return response.BookingToResponse(booking), nil
}

// GetByReference looks a booking up by its human-readable reference, the id
// guests quote in support conversations.
func (s *bookingService) GetByReference(ctx context.Context, reference string) (*response.BookingResponse, error) {
	if reference == "" {
		return nil, rejectValidation("invalid_reference", "reference", reference)
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("load booking by reference %s: %w", reference, err)
	}
	if booking == nil {
		return nil, rejectNotFound("booking", reference)
	}
	return response.BookingToResponse(booking), nil
}

func (s *bookingService) ListByRental(ctx context.Context, rentalID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := parseUUID(rentalID, "rental_id")
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByRentalID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list rental bookings",
			zap.Error(err),
			zap.String("rental_id", rentalID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("list bookings for rental %s: %w", rentalID, err)
	}

	total, err := s.repo.Booking.CountByRentalID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count rental bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings for rental %s: %w", rentalID, err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = *response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// ListByGuest returns the guest's booking history, newest first.
func (s *bookingService) ListByGuest(ctx context.Context, guestID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	id, err := parseUUID(guestID, "guest_id")
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.Booking.FindByGuestID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list guest bookings",
			zap.Error(err),
			zap.String("guest_id", guestID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("list bookings for guest %s: %w", guestID, err)
	}

	total, err := s.repo.Booking.CountByGuestID(ctx, id)
	if err != nil {
		s.log.Error("Failed to count guest bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings for guest %s: %w", guestID, err)
	}

	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		items[i] = *response.BookingToResponse(booking)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, next entity.BookingStatus) error {
	booking.Status = next
	booking.UpdatedAt = time.Now().UTC()

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, next); err != nil {
		return fmt.Errorf("transition booking %s to %s: %w", booking.ID.String(), next, err)
	}

	s.log.Info("Booking transitioned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(next)),
	)
	return nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := parseUUID(bookingID, "booking_id")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, rejectNotFound("booking", bookingID)
	}
	return booking, nil
}

func (s *bookingService) loadRental(ctx context.Context, rentalID uuid.UUID) (*entity.Rental, error) {
	rental, err := s.repo.Rental.FindByID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("load rental %s: %w", rentalID.String(), err)
	}
	if rental == nil {
		return nil, rejectNotFound("rental", rentalID.String())
	}
	return rental, nil
}

func (s *bookingService) loadConfig(ctx context.Context, rentalID uuid.UUID) (*entity.RentalPricingConfig, error) {
	config, err := s.repo.Pricing.FindByRentalID(ctx, rentalID)
	if err != nil {
		return nil, fmt.Errorf("load pricing config %s: %w", rentalID.String(), err)
	}
	if config == nil {
		return nil, rejectNotFound("pricing_config", rentalID.String())
	}
	return config, nil
}

func guestCounts(req request.GuestCountsRequest) entity.GuestCounts {
	return entity.GuestCounts{
		Adults:   req.Adults,
		Children: req.Children,
		Infants:  req.Infants,
		Pets:     req.Pets,
	}
}

func parseUUID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, rejectValidation("invalid_id", field, value)
	}
	return id, nil
}

func parseRange(checkIn, checkOut string) (entity.DateRange, error) {
	start, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return entity.DateRange{}, rejectValidation("invalid_date", "check_in_date", checkIn)
	}
	end, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return entity.DateRange{}, rejectValidation("invalid_date", "check_out_date", checkOut)
	}

	r := entity.NewDateRange(start, end)
	if !r.IsValid() {
		return entity.DateRange{}, rejectValidation(ReasonInvalidRange, "check_out_date", "check-out must be after check-in")
	}
	return r, nil
}
