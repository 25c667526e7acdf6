package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarDay is one availability record per (rental, date). Days are created
// lazily: a date that was never stored is synthesized as an available default when
// a range is read. Days are never deleted, only reset to the default state.
//
// Invariant: a day with a non-nil BookingID always has IsAvailable = false.
type CalendarDay struct {
	RentalID      uuid.UUID  `db:"rental_id"`
	Date          time.Time  `db:"date"`
	IsAvailable   bool       `db:"is_available"`
	IsBlocked     bool       `db:"is_blocked"`
	BlockReason   *string    `db:"block_reason"`
	PriceOverride *int64     `db:"price_override"` // minor units, nil = use pricing config
	MinimumStay   *int       `db:"minimum_stay"`   // nights, nil = rental-level minimum
	BookingID     *uuid.UUID `db:"booking_id"`
}

func DefaultCalendarDay(rentalID uuid.UUID, date time.Time) *CalendarDay {
	return &CalendarDay{
		RentalID:    rentalID,
		Date:        Date(date),
		IsAvailable: true,
	}
}

// Bookable reports whether a booking may occupy this day.
func (d *CalendarDay) Bookable() bool {
	return d.IsAvailable && !d.IsBlocked && d.BookingID == nil
}

// IsDefault reports whether the day carries no state worth persisting.
func (d *CalendarDay) IsDefault() bool {
	return d.IsAvailable && !d.IsBlocked && d.BlockReason == nil &&
		d.PriceOverride == nil && d.MinimumStay == nil && d.BookingID == nil
}

// DayChangeset is an explicit host-edit patch for a single day. Nil fields are
// left untouched; it never carries availability side effects.
type DayChangeset struct {
	PriceOverride *int64
	MinimumStay   *int
}

func (c DayChangeset) IsEmpty() bool {
	return c.PriceOverride == nil && c.MinimumStay == nil
}
