package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusDisputed   BookingStatus = "disputed"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// bookingTransitions is the full lifecycle graph. Disputed bookings are frozen
// until external resolution moves them to completed or cancelled.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut, BookingStatusDisputed},
	BookingStatusCheckedOut: {BookingStatusCompleted, BookingStatusDisputed},
	BookingStatusDisputed:   {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

type GuestCounts struct {
	Adults   int `db:"adults" json:"adults"`
	Children int `db:"children" json:"children"`
	Infants  int `db:"infants" json:"infants"`
	Pets     int `db:"pets" json:"pets"`
}

// Countable is the headcount measured against the rental's guest limit.
// Infants and pets do not take up guest capacity.
func (g GuestCounts) Countable() int {
	return g.Adults + g.Children
}

type CancellationRecord struct {
	CancelledBy      uuid.UUID `db:"cancelled_by"`
	Reason           string    `db:"reason"`
	CancelledAt      time.Time `db:"cancelled_at"`
	RefundPercentage int       `db:"refund_percentage"`
	RefundAmount     Money     `db:"-"`
	PenaltyAmount    Money     `db:"-"`
}

// Booking is the central transactional entity. Cancelled and completed bookings
// are retained for audit and calendar history, never deleted. Pricing is a frozen
// snapshot; re-quoting produces a new snapshot, never a mutation of this one.
type Booking struct {
	Base
	Reference     string              `db:"reference"`
	RentalID      uuid.UUID           `db:"rental_id"`
	GuestID       uuid.UUID           `db:"guest_id"`
	OwnerID       uuid.UUID           `db:"owner_id"`
	Status        BookingStatus       `db:"status"`
	CheckInDate   time.Time           `db:"check_in_date"`
	CheckOutDate  time.Time           `db:"check_out_date"`
	Guests        GuestCounts         `db:"-"`
	Pricing       BookingPricing      `db:"-"`
	PaymentStatus PaymentStatus       `db:"payment_status"`
	Cancellation  *CancellationRecord `db:"-"`
}

func (b *Booking) Range() DateRange {
	return DateRange{CheckIn: b.CheckInDate, CheckOut: b.CheckOutDate}
}
