package usecase

import (
	"context"
	"testing"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	service  BookingService
	rental   *entity.Rental
	calendar CalendarService
	bookings *bookingRepoMock
	calRepo  *calendarRepoMock
	payments *paymentMock
	refunds  *RefundWorker
	events   *eventsMock
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	rental := testRental()
	policy := moderateTestPolicy()
	policy.RentalID = rental.ID

	calRepo := newCalendarRepoMock()
	bookings := newBookingRepoMock()
	events := &eventsMock{}
	payments := &paymentMock{}

	repo := &repository.Repository{
		Rental:   &rentalRepoMock{rental: rental},
		Calendar: calRepo,
		Booking:  bookings,
		Pricing:  &pricingRepoMock{config: baseConfig()},
		Policy:   &policyRepoMock{policy: &policy},
	}

	calendar := NewCalendarService(calRepo, events, testLogger())
	availability := NewAvailabilityChecker(calendar, 0, testLogger())
	pricing := NewPricingEngine(18, testLogger())
	refunds := NewRefundWorker(payments, testLogger())

	service := NewBookingService(repo, calendar, availability, pricing, payments, refunds, events, testLogger())

	return &bookingFixture{
		service:  service,
		rental:   rental,
		calendar: calendar,
		bookings: bookings,
		calRepo:  calRepo,
		payments: payments,
		refunds:  refunds,
		events:   events,
	}
}

func moderateTestPolicy() entity.CancellationPolicy {
	return entity.CancellationPolicy{
		Type: entity.PolicyModerate,
		Schedule: []entity.RefundSchedule{
			{DaysBeforeCheckIn: 3, RefundPercentage: 50},
			{DaysBeforeCheckIn: 7, RefundPercentage: 100},
		},
	}
}

func submitReq(f *bookingFixture, checkIn, checkOut string) *request.SubmitBookingRequest {
	return &request.SubmitBookingRequest{
		RentalID:     f.rental.ID.String(),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       request.GuestCountsRequest{Adults: 2},
	}
}

func (f *bookingFixture) submit(t *testing.T, checkIn, checkOut string) string {
	t.Helper()
	resp, err := f.service.Submit(context.Background(), uuid.New().String(),
		submitReq(f, checkIn, checkOut), date(2026, 7, 1))
	require.NoError(t, err)
	return resp.ID
}

func TestSubmit_CreatesPendingBookingAndOccupiesCalendar(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.service.Submit(context.Background(), uuid.New().String(),
		submitReq(f, "2026-07-10", "2026-07-13"), date(2026, 7, 1))
	require.NoError(t, err)

	require.Equal(t, entity.BookingStatusPending, resp.Status)
	require.Equal(t, entity.PaymentStatusPending, resp.PaymentStatus)
	require.Equal(t, 3, resp.Nights)
	require.NotEmpty(t, resp.Reference)
	// 3 x 100.00, 18% tax
	require.Equal(t, int64(30000), resp.Pricing.Subtotal)
	require.Equal(t, int64(35400), resp.Pricing.Total)

	bookingID := uuid.MustParse(resp.ID)
	day := f.calRepo.stored(f.rental.ID, date(2026, 7, 10))
	require.NotNil(t, day)
	require.Equal(t, bookingID, *day.BookingID)
	require.Len(t, f.payments.authorized, 1)
}

func TestSubmit_OverlapRejectedWithoutPartialState(t *testing.T) {
	f := newBookingFixture(t)
	f.submit(t, "2026-07-10", "2026-07-13")

	_, err := f.service.Submit(context.Background(), uuid.New().String(),
		submitReq(f, "2026-07-12", "2026-07-15"), date(2026, 7, 1))

	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindAvailabilityConflict, rejection.Kind)

	// Only the winning booking exists.
	n, err := f.bookings.CountByRentalID(context.Background(), f.rental.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestSubmit_BackToBackStays(t *testing.T) {
	f := newBookingFixture(t)
	f.submit(t, "2026-07-10", "2026-07-13")
	f.submit(t, "2026-07-13", "2026-07-16")
}

func TestConfirm_IsIdempotent(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	first, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusConfirmed, first.Status)
	require.Equal(t, entity.PaymentStatusAuthorized, first.PaymentStatus)
	require.True(t, f.events.published("booking.confirmed"))

	again, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusConfirmed, again.Status)
}

func TestCancel_AppliesPolicyAndReleasesCalendar(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")
	_, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)

	// 5 days before check-in: 50% band. Total is 35400.
	resp, err := f.service.Cancel(context.Background(), id,
		&request.CancelBookingRequest{CancelledBy: uuid.New().String(), Reason: "change of plans"},
		date(2026, 7, 5))
	require.NoError(t, err)

	require.Equal(t, entity.BookingStatusCancelled, resp.Status)
	require.NotNil(t, resp.Cancellation)
	require.Equal(t, 50, resp.Cancellation.RefundPercentage)
	require.Equal(t, int64(17700), resp.Cancellation.RefundAmount)
	require.Equal(t, int64(17700), resp.Cancellation.PenaltyAmount)
	require.True(t, f.events.published("booking.cancelled"))

	// Dates are immediately rebookable.
	day := f.calRepo.stored(f.rental.ID, date(2026, 7, 10))
	require.True(t, day.Bookable())
	f.submit(t, "2026-07-10", "2026-07-13")
}

func TestCancel_RefundIssuedOutOfBand(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.refunds.Start(ctx)

	_, err := f.service.Cancel(context.Background(), id,
		&request.CancelBookingRequest{CancelledBy: uuid.New().String()},
		date(2026, 7, 1))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		f.payments.mu.Lock()
		defer f.payments.mu.Unlock()
		return len(f.payments.refunded) == 1 && f.payments.refunded[0].Amount == 35400
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCancel_RejectedAfterCheckIn(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")
	_, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)
	_, err = f.service.CheckIn(context.Background(), id, date(2026, 7, 10))
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), id,
		&request.CancelBookingRequest{CancelledBy: uuid.New().String()},
		date(2026, 7, 11))

	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindInvalidTransition, rejection.Kind)
}

func TestLifecycle_FullHappyPath(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	_, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)
	_, err = f.service.CheckIn(context.Background(), id, date(2026, 7, 10))
	require.NoError(t, err)
	_, err = f.service.CheckOut(context.Background(), id, date(2026, 7, 13))
	require.NoError(t, err)
	resp, err := f.service.Complete(context.Background(), id)
	require.NoError(t, err)

	require.Equal(t, entity.BookingStatusCompleted, resp.Status)
	require.True(t, f.events.published("booking.checkin_completed"))
	require.True(t, f.events.published("booking.checkout_completed"))
	require.True(t, f.events.published("booking.completed"))
}

func TestCheckIn_TooEarlyAndWrongState(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	// Still pending: transition not allowed.
	_, err := f.service.CheckIn(context.Background(), id, date(2026, 7, 10))
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindInvalidTransition, rejection.Kind)

	_, err = f.service.Confirm(context.Background(), id)
	require.NoError(t, err)

	// Confirmed but the stay has not started yet.
	_, err = f.service.CheckIn(context.Background(), id, date(2026, 7, 9))
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, ReasonTransitionTooEarly, rejection.Reason)
}

func TestDispute_FreezesLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	_, err := f.service.Confirm(context.Background(), id)
	require.NoError(t, err)
	_, err = f.service.CheckIn(context.Background(), id, date(2026, 7, 10))
	require.NoError(t, err)

	resp, err := f.service.Dispute(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, entity.BookingStatusDisputed, resp.Status)
	require.True(t, f.events.published("booking.disputed"))

	// Disputed bookings resolve to completed or cancelled, nothing else.
	_, err = f.service.CheckOut(context.Background(), id, date(2026, 7, 13))
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindInvalidTransition, rejection.Kind)

	_, err = f.service.Complete(context.Background(), id)
	require.NoError(t, err)
}

func TestQuoteService_MatchesSubmitPricing(t *testing.T) {
	f := newBookingFixture(t)

	quoteResp, err := f.service.Quote(context.Background(), &request.QuoteRequest{
		RentalID:     f.rental.ID.String(),
		CheckInDate:  "2026-07-10",
		CheckOutDate: "2026-07-13",
		Guests:       request.GuestCountsRequest{Adults: 2},
	})
	require.NoError(t, err)

	submitResp, err := f.service.Submit(context.Background(), uuid.New().String(),
		submitReq(f, "2026-07-10", "2026-07-13"), date(2026, 7, 1))
	require.NoError(t, err)

	require.Equal(t, *quoteResp, submitResp.Pricing)
}

func TestGetByReference_RoundTrip(t *testing.T) {
	f := newBookingFixture(t)
	id := f.submit(t, "2026-07-10", "2026-07-13")

	created, err := f.service.GetByID(context.Background(), id)
	require.NoError(t, err)

	found, err := f.service.GetByReference(context.Background(), created.Reference)
	require.NoError(t, err)
	require.Equal(t, id, found.ID)

	_, err = f.service.GetByReference(context.Background(), "RENT-00000000-000000-XXXX")
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindNotFound, rejection.Kind)
}

func TestListByGuest_OnlyOwnBookings(t *testing.T) {
	f := newBookingFixture(t)
	guestID := uuid.New().String()

	_, err := f.service.Submit(context.Background(), guestID,
		submitReq(f, "2026-07-10", "2026-07-13"), date(2026, 7, 1))
	require.NoError(t, err)
	f.submit(t, "2026-07-20", "2026-07-23") // someone else's stay

	page, err := f.service.ListByGuest(context.Background(), guestID,
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Pagination.Total)
	require.Len(t, page.Data, 1)
	require.Equal(t, guestID, page.Data[0].GuestID)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.GetByID(context.Background(), uuid.New().String())
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindNotFound, rejection.Kind)
}
