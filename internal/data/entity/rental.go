package entity

import (
	"github.com/google/uuid"
)

type Rental struct {
	Base
	OwnerID      uuid.UUID            `db:"owner_id"`
	Title        string               `db:"title"`
	Rules        RentalRules          `db:"-"`
	Availability AvailabilitySettings `db:"-"`
}

type RentalRules struct {
	MaxGuests   int  `db:"max_guests"`
	PetsAllowed bool `db:"pets_allowed"`
}

type AvailabilitySettings struct {
	// AdvanceNoticeHours is the minimum lead time between the booking request and
	// check-in. Zero means same-day requests are fine.
	AdvanceNoticeHours int `db:"advance_notice_hours"`
}
