package usecase

import (
	"context"
	"sync"
	"time"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// calendarRepoMock is an in-memory CalendarRepository. It hands out copies the
// way a real store would, so mutations only land through UpsertDays.
type calendarRepoMock struct {
	mu         sync.Mutex
	days       map[string]*entity.CalendarDay
	failUpsert error
}

func newCalendarRepoMock() *calendarRepoMock {
	return &calendarRepoMock{days: make(map[string]*entity.CalendarDay)}
}

func dayKey(rentalID uuid.UUID, date time.Time) string {
	return rentalID.String() + "|" + date.Format("2006-01-02")
}

func cloneDay(d *entity.CalendarDay) *entity.CalendarDay {
	c := *d
	if d.BlockReason != nil {
		r := *d.BlockReason
		c.BlockReason = &r
	}
	if d.PriceOverride != nil {
		p := *d.PriceOverride
		c.PriceOverride = &p
	}
	if d.MinimumStay != nil {
		m := *d.MinimumStay
		c.MinimumStay = &m
	}
	if d.BookingID != nil {
		id := *d.BookingID
		c.BookingID = &id
	}
	return &c
}

func (m *calendarRepoMock) FindRange(ctx context.Context, rentalID uuid.UUID, start, end time.Time) ([]*entity.CalendarDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.CalendarDay
	for d := entity.Date(start); d.Before(entity.Date(end)); d = d.AddDate(0, 0, 1) {
		if stored, ok := m.days[dayKey(rentalID, d)]; ok {
			out = append(out, cloneDay(stored))
		}
	}
	return out, nil
}

func (m *calendarRepoMock) UpsertDays(ctx context.Context, days []*entity.CalendarDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failUpsert != nil {
		return m.failUpsert
	}
	for _, d := range days {
		m.days[dayKey(d.RentalID, d.Date)] = cloneDay(d)
	}
	return nil
}

func (m *calendarRepoMock) stored(rentalID uuid.UUID, date time.Time) *entity.CalendarDay {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.days[dayKey(rentalID, entity.Date(date))]; ok {
		return cloneDay(d)
	}
	return nil
}

// bookingRepoMock is an in-memory BookingRepository.
type bookingRepoMock struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*entity.Booking
	failCreate error
}

func newBookingRepoMock() *bookingRepoMock {
	return &bookingRepoMock{bookings: make(map[uuid.UUID]*entity.Booking)}
}

// cloneBooking copies the aggregate including its pricing snapshot, so a caller
// mutating a returned booking never reaches the stored one.
func cloneBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.Pricing = b.Pricing.Clone()
	if b.Cancellation != nil {
		rec := *b.Cancellation
		c.Cancellation = &rec
	}
	return &c
}

func (m *bookingRepoMock) Create(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	m.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (m *bookingRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[id]; ok {
		return cloneBooking(b), nil
	}
	return nil, nil
}

func (m *bookingRepoMock) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.Reference == reference {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (m *bookingRepoMock) FindByRentalID(ctx context.Context, rentalID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if b.RentalID == rentalID {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (m *bookingRepoMock) CountByRentalID(ctx context.Context, rentalID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.RentalID == rentalID {
			n++
		}
	}
	return n, nil
}

func (m *bookingRepoMock) FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Booking
	for _, b := range m.bookings {
		if b.GuestID == guestID {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (m *bookingRepoMock) CountByGuestID(ctx context.Context, guestID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.GuestID == guestID {
			n++
		}
	}
	return n, nil
}

func (m *bookingRepoMock) Update(ctx context.Context, booking *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (m *bookingRepoMock) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.bookings[bookingID]; ok {
		b.Status = status
	}
	return nil
}

// rentalRepoMock serves a fixed rental.
type rentalRepoMock struct {
	rental *entity.Rental
}

func (m *rentalRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rental, error) {
	if m.rental != nil && m.rental.ID == id {
		return m.rental, nil
	}
	return nil, nil
}

// pricingRepoMock serves a fixed config.
type pricingRepoMock struct {
	config *entity.RentalPricingConfig
}

func (m *pricingRepoMock) FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.RentalPricingConfig, error) {
	return m.config, nil
}

// policyRepoMock serves a fixed policy.
type policyRepoMock struct {
	policy *entity.CancellationPolicy
}

func (m *policyRepoMock) FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.CancellationPolicy, error) {
	return m.policy, nil
}

// paymentMock records gateway calls; per-call behavior is overridable.
type paymentMock struct {
	mu          sync.Mutex
	authorized  []uuid.UUID
	refunded    []entity.Money
	authorizeFn func(ctx context.Context, amount entity.Money, bookingID uuid.UUID) error
	refundFn    func(ctx context.Context, amount entity.Money, bookingID uuid.UUID, reason string) error
}

func (m *paymentMock) Authorize(ctx context.Context, amount entity.Money, bookingID uuid.UUID) error {
	if m.authorizeFn != nil {
		return m.authorizeFn(ctx, amount, bookingID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authorized = append(m.authorized, bookingID)
	return nil
}

func (m *paymentMock) Refund(ctx context.Context, amount entity.Money, bookingID uuid.UUID, reason string) error {
	if m.refundFn != nil {
		return m.refundFn(ctx, amount, bookingID, reason)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunded = append(m.refunded, amount)
	return nil
}

// eventsMock records published event names.
type eventsMock struct {
	mu     sync.Mutex
	events []string
}

func (m *eventsMock) Publish(ctx context.Context, event entity.DomainEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event.EventName())
}

func (m *eventsMock) published(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e == name {
			return true
		}
	}
	return false
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
