package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarService owns the day-indexed availability records of every rental. All
// range operations are half-open [start, end): the check-out day is never occupied.
type CalendarService interface {
	GetRange(ctx context.Context, rentalID uuid.UUID, start, end time.Time) ([]*entity.CalendarDay, error)
	ApplyBooking(ctx context.Context, rentalID uuid.UUID, r entity.DateRange, bookingID uuid.UUID) error
	ReleaseBooking(ctx context.Context, rentalID uuid.UUID, r entity.DateRange, bookingID uuid.UUID) error
	SetManualBlock(ctx context.Context, rentalID uuid.UUID, dates []time.Time, reason string) error
	ClearManualBlock(ctx context.Context, rentalID uuid.UUID, dates []time.Time) error
	SetOverride(ctx context.Context, rentalID uuid.UUID, date time.Time, changes entity.DayChangeset) error
}

type calendarService struct {
	repo   repository.CalendarRepository
	events EventPublisher
	log    *zap.Logger

	// Per-rental locks make the check-then-mutate of ApplyBooking indivisible
	// with respect to concurrent calendar writes on the same rental. Without
	// this, two overlapping requests can both pass the availability scan and
	// double-book.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewCalendarService(repo repository.CalendarRepository, events EventPublisher, log *zap.Logger) CalendarService {
	return &calendarService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "calendar")),
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *calendarService) rentalLock(rentalID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[rentalID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[rentalID] = lock
	}
	return lock
}

// GetRange returns one entry per day of [start, end), synthesizing the available
// default for days that were never explicitly stored.
func (s *calendarService) GetRange(ctx context.Context, rentalID uuid.UUID, start, end time.Time) ([]*entity.CalendarDay, error) {
	r := entity.NewDateRange(start, end)
	if !r.IsValid() {
		return nil, rejectValidation(ReasonInvalidRange, "end", "end must be after start")
	}
	return s.loadRange(ctx, rentalID, r)
}

func (s *calendarService) loadRange(ctx context.Context, rentalID uuid.UUID, r entity.DateRange) ([]*entity.CalendarDay, error) {
	stored, err := s.repo.FindRange(ctx, rentalID, r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("load calendar range: %w", err)
	}

	byDate := make(map[time.Time]*entity.CalendarDay, len(stored))
	for _, day := range stored {
		byDate[day.Date] = day
	}

	days := make([]*entity.CalendarDay, 0, r.Nights())
	for _, date := range r.Days() {
		if day, ok := byDate[date]; ok {
			days = append(days, day)
		} else {
			days = append(days, entity.DefaultCalendarDay(rentalID, date))
		}
	}

	return days, nil
}

// ApplyBooking marks every day of the range as booked, or mutates nothing. The
// scan and the write happen under the rental's lock so concurrent applies on
// overlapping ranges serialize; at most one wins.
func (s *calendarService) ApplyBooking(ctx context.Context, rentalID uuid.UUID, r entity.DateRange, bookingID uuid.UUID) error {
	if !r.IsValid() {
		return rejectValidation(ReasonInvalidRange, "check_out", "check-out must be after check-in")
	}

	lock := s.rentalLock(rentalID)
	lock.Lock()
	defer lock.Unlock()

	days, err := s.loadRange(ctx, rentalID, r)
	if err != nil {
		return err
	}

	for _, day := range days {
		if !day.Bookable() {
			s.events.Publish(ctx, entity.OverbookingPreventedEvent{
				RentalID: rentalID,
				Range:    r,
				At:       time.Now().UTC(),
			})
			s.log.Warn("Booking apply rejected",
				zap.String("rental_id", rentalID.String()),
				zap.String("booking_id", bookingID.String()),
				zap.Time("conflicting_date", day.Date),
			)
			return rejectConflict(day.Date)
		}
	}

	id := bookingID
	for _, day := range days {
		day.IsAvailable = false
		day.BookingID = &id
	}

	if err := s.repo.UpsertDays(ctx, days); err != nil {
		return &Rejection{Kind: KindPersistenceConflict, Reason: "calendar_write_failed", Detail: err.Error()}
	}

	s.log.Info("Booking applied to calendar",
		zap.String("rental_id", rentalID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("nights", r.Nights()),
	)
	return nil
}

// ReleaseBooking resets every day of the range owned by bookingID back to
// available. Days owned by a different booking are left untouched and logged as
// an inconsistency; that should not happen if invariants hold.
func (s *calendarService) ReleaseBooking(ctx context.Context, rentalID uuid.UUID, r entity.DateRange, bookingID uuid.UUID) error {
	if !r.IsValid() {
		return rejectValidation(ReasonInvalidRange, "check_out", "check-out must be after check-in")
	}

	lock := s.rentalLock(rentalID)
	lock.Lock()
	defer lock.Unlock()

	days, err := s.loadRange(ctx, rentalID, r)
	if err != nil {
		return err
	}

	var released []*entity.CalendarDay
	for _, day := range days {
		if day.BookingID == nil {
			continue
		}
		if *day.BookingID != bookingID {
			s.log.Error("Calendar day owned by unexpected booking during release",
				zap.String("rental_id", rentalID.String()),
				zap.Time("date", day.Date),
				zap.String("expected", bookingID.String()),
				zap.String("actual", day.BookingID.String()),
			)
			continue
		}
		day.IsAvailable = true
		day.BookingID = nil
		released = append(released, day)
	}

	if len(released) == 0 {
		return nil
	}

	if err := s.repo.UpsertDays(ctx, released); err != nil {
		return fmt.Errorf("release booking days: %w", err)
	}

	s.events.Publish(ctx, entity.CalendarReleasedEvent{
		RentalID: rentalID,
		Range:    r,
		At:       time.Now().UTC(),
	})

	s.log.Info("Booking released from calendar",
		zap.String("rental_id", rentalID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("days", len(released)),
	)
	return nil
}

// SetManualBlock blocks individual dates for the host. A day occupied by a
// booking cannot be blocked without cancelling the booking first.
func (s *calendarService) SetManualBlock(ctx context.Context, rentalID uuid.UUID, dates []time.Time, reason string) error {
	if len(dates) == 0 {
		return rejectValidation(ReasonInvalidRange, "dates", "at least one date required")
	}

	lock := s.rentalLock(rentalID)
	lock.Lock()
	defer lock.Unlock()

	days, err := s.loadDates(ctx, rentalID, dates)
	if err != nil {
		return err
	}

	for _, day := range days {
		if day.BookingID != nil {
			d := day.Date
			return &Rejection{Kind: KindValidation, Reason: ReasonBlockedDayOccupied, Date: &d}
		}
	}

	for _, day := range days {
		day.IsBlocked = true
		if reason != "" {
			r := reason
			day.BlockReason = &r
		}
	}

	if err := s.repo.UpsertDays(ctx, days); err != nil {
		return fmt.Errorf("set manual block: %w", err)
	}

	s.events.Publish(ctx, entity.CalendarBlockedEvent{
		RentalID: rentalID,
		Dates:    dates,
		Reason:   reason,
		At:       time.Now().UTC(),
	})
	return nil
}

func (s *calendarService) ClearManualBlock(ctx context.Context, rentalID uuid.UUID, dates []time.Time) error {
	if len(dates) == 0 {
		return rejectValidation(ReasonInvalidRange, "dates", "at least one date required")
	}

	lock := s.rentalLock(rentalID)
	lock.Lock()
	defer lock.Unlock()

	days, err := s.loadDates(ctx, rentalID, dates)
	if err != nil {
		return err
	}

	// Days that were never stored (or hold no state) have nothing to clear;
	// writing them would materialize rows for purely synthesized defaults.
	var changed []*entity.CalendarDay
	for _, day := range days {
		if day.IsDefault() {
			continue
		}
		day.IsBlocked = false
		day.BlockReason = nil
		changed = append(changed, day)
	}
	if len(changed) == 0 {
		return nil
	}

	if err := s.repo.UpsertDays(ctx, changed); err != nil {
		return fmt.Errorf("clear manual block: %w", err)
	}
	return nil
}

// SetOverride applies a host pricing/stay changeset to one day. It never touches
// availability.
func (s *calendarService) SetOverride(ctx context.Context, rentalID uuid.UUID, date time.Time, changes entity.DayChangeset) error {
	if changes.IsEmpty() {
		return rejectValidation("empty_changeset", "changes", "nothing to apply")
	}

	lock := s.rentalLock(rentalID)
	lock.Lock()
	defer lock.Unlock()

	days, err := s.loadDates(ctx, rentalID, []time.Time{date})
	if err != nil {
		return err
	}

	day := days[0]
	if changes.PriceOverride != nil {
		day.PriceOverride = changes.PriceOverride
	}
	if changes.MinimumStay != nil {
		day.MinimumStay = changes.MinimumStay
	}

	if err := s.repo.UpsertDays(ctx, days); err != nil {
		return fmt.Errorf("set day override: %w", err)
	}
	return nil
}

func (s *calendarService) loadDates(ctx context.Context, rentalID uuid.UUID, dates []time.Time) ([]*entity.CalendarDay, error) {
	days := make([]*entity.CalendarDay, 0, len(dates))
	for _, date := range dates {
		d := entity.Date(date)
		loaded, err := s.loadRange(ctx, rentalID, entity.DateRange{CheckIn: d, CheckOut: d.AddDate(0, 0, 1)})
		if err != nil {
			return nil, err
		}
		days = append(days, loaded[0])
	}
	return days, nil
}
