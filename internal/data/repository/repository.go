package repository

import (
	"rental-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Rental   RentalRepository
	Calendar CalendarRepository
	Booking  BookingRepository
	Pricing  PricingRepository
	Policy   PolicyRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Rental:   NewRentalRepository(db, log),
		Calendar: NewCalendarRepository(db, log),
		Booking:  NewBookingRepository(db, log),
		Pricing:  NewPricingRepository(db, log),
		Policy:   NewPolicyRepository(db, log),
	}
}
