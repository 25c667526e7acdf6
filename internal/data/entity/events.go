package entity

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is what the engine hands to the notification collaborator. Delivery
// and channel fan-out are entirely the collaborator's concern.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

type BookingConfirmedEvent struct {
	BookingID uuid.UUID
	RentalID  uuid.UUID
	Range     DateRange
	Total     Money
	At        time.Time
}

func (e BookingConfirmedEvent) EventName() string     { return "booking.confirmed" }
func (e BookingConfirmedEvent) AggregateID() string   { return e.BookingID.String() }
func (e BookingConfirmedEvent) OccurredAt() time.Time { return e.At }

type BookingCancelledEvent struct {
	BookingID uuid.UUID
	RentalID  uuid.UUID
	Refund    Money
	Penalty   Money
	Reason    string
	At        time.Time
}

func (e BookingCancelledEvent) EventName() string     { return "booking.cancelled" }
func (e BookingCancelledEvent) AggregateID() string   { return e.BookingID.String() }
func (e BookingCancelledEvent) OccurredAt() time.Time { return e.At }

type CheckInCompletedEvent struct {
	BookingID uuid.UUID
	At        time.Time
}

func (e CheckInCompletedEvent) EventName() string     { return "booking.checkin_completed" }
func (e CheckInCompletedEvent) AggregateID() string   { return e.BookingID.String() }
func (e CheckInCompletedEvent) OccurredAt() time.Time { return e.At }

type CheckOutCompletedEvent struct {
	BookingID uuid.UUID
	At        time.Time
}

func (e CheckOutCompletedEvent) EventName() string     { return "booking.checkout_completed" }
func (e CheckOutCompletedEvent) AggregateID() string   { return e.BookingID.String() }
func (e CheckOutCompletedEvent) OccurredAt() time.Time { return e.At }

type BookingCompletedEvent struct {
	BookingID uuid.UUID
	At        time.Time
}

func (e BookingCompletedEvent) EventName() string     { return "booking.completed" }
func (e BookingCompletedEvent) AggregateID() string   { return e.BookingID.String() }
func (e BookingCompletedEvent) OccurredAt() time.Time { return e.At }

type BookingDisputedEvent struct {
	BookingID uuid.UUID
	At        time.Time
}

func (e BookingDisputedEvent) EventName() string     { return "booking.disputed" }
func (e BookingDisputedEvent) AggregateID() string   { return e.BookingID.String() }
func (e BookingDisputedEvent) OccurredAt() time.Time { return e.At }

type CalendarBlockedEvent struct {
	RentalID uuid.UUID
	Dates    []time.Time
	Reason   string
	At       time.Time
}

func (e CalendarBlockedEvent) EventName() string     { return "calendar.blocked" }
func (e CalendarBlockedEvent) AggregateID() string   { return e.RentalID.String() }
func (e CalendarBlockedEvent) OccurredAt() time.Time { return e.At }

type CalendarReleasedEvent struct {
	RentalID uuid.UUID
	Range    DateRange
	At       time.Time
}

func (e CalendarReleasedEvent) EventName() string     { return "calendar.released" }
func (e CalendarReleasedEvent) AggregateID() string   { return e.RentalID.String() }
func (e CalendarReleasedEvent) OccurredAt() time.Time { return e.At }

// OverbookingPreventedEvent marks a submit that lost the calendar race. Useful for
// ops visibility into contention on popular rentals.
type OverbookingPreventedEvent struct {
	RentalID uuid.UUID
	Range    DateRange
	At       time.Time
}

func (e OverbookingPreventedEvent) EventName() string     { return "calendar.overbooking_prevented" }
func (e OverbookingPreventedEvent) AggregateID() string   { return e.RentalID.String() }
func (e OverbookingPreventedEvent) OccurredAt() time.Time { return e.At }
