package entity

import (
	"time"

	"github.com/google/uuid"
)

type PricingType string

const (
	PricingPerNight PricingType = "per_night"
	PricingPerWeek  PricingType = "per_week"
	PricingPerMonth PricingType = "per_month"
	PricingPerYear  PricingType = "per_year"
)

type DiscountType string

const (
	DiscountWeekly     DiscountType = "weekly"
	DiscountMonthly    DiscountType = "monthly"
	DiscountEarlyBird  DiscountType = "early_bird"
	DiscountLastMinute DiscountType = "last_minute"
	DiscountLongStay   DiscountType = "long_stay"
	DiscountFirstTime  DiscountType = "first_time"
	DiscountSeasonal   DiscountType = "seasonal"
)

type FeeType string

const (
	FeeCleaning     FeeType = "cleaning"
	FeePet          FeeType = "pet"
	FeeExtraGuest   FeeType = "extra_guest"
	FeeParking      FeeType = "parking"
	FeeWifi         FeeType = "wifi"
	FeeTowelsLinens FeeType = "towels_linens"
	FeeOther        FeeType = "other"
)

// RentalPricingConfig is the host-owned pricing setup for one rental. Bookings
// reference it by rental id and read it at evaluation time, so host edits apply
// prospectively without touching frozen booking snapshots.
type RentalPricingConfig struct {
	RentalID        uuid.UUID   `db:"rental_id"`
	BasePrice       Money       `db:"-"`
	PricingType     PricingType `db:"pricing_type"`
	SecurityDeposit Money       `db:"-"`
	CleaningFee     *Money      `db:"-"`
	MinimumStay     int         `db:"minimum_stay"`
	MaximumStay     *int        `db:"maximum_stay"`
	IncludedGuests  int         `db:"included_guests"`

	SeasonalRates []SeasonalRate
	Discounts     []RentalDiscount
	Fees          []RentalFee
}

// NightlyBase normalizes the base price to one night regardless of pricing type.
func (c *RentalPricingConfig) NightlyBase() Money {
	switch c.PricingType {
	case PricingPerWeek:
		return c.BasePrice.Scale(1.0 / 7)
	case PricingPerMonth:
		return c.BasePrice.Scale(1.0 / 30)
	case PricingPerYear:
		return c.BasePrice.Scale(1.0 / 365)
	default:
		return c.BasePrice
	}
}

// SeasonalRate scales the nightly base over a half-open [StartDate, EndDate) window.
type SeasonalRate struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	PriceMultiplier float64   `db:"price_multiplier"`
	IsActive        bool      `db:"is_active"`
}

func (r SeasonalRate) Covers(day time.Time) bool {
	d := Date(day)
	return !d.Before(Date(r.StartDate)) && d.Before(Date(r.EndDate))
}

type RentalDiscount struct {
	ID           uuid.UUID    `db:"id"`
	Type         DiscountType `db:"type"`
	Name         string       `db:"name"`
	Value        float64      `db:"value"` // percent when IsPercentage, minor units otherwise
	IsPercentage bool         `db:"is_percentage"`
	MinimumStay  *int         `db:"minimum_stay"`
	ValidFrom    *time.Time   `db:"valid_from"`
	ValidTo      *time.Time   `db:"valid_to"`
	IsActive     bool         `db:"is_active"`
}

// AppliesTo gates a discount on its activity flag, minimum-stay threshold and
// validity window. The window is half-open and evaluated against check-in.
func (d RentalDiscount) AppliesTo(checkIn time.Time, nights int) bool {
	if !d.IsActive {
		return false
	}
	if d.MinimumStay != nil && nights < *d.MinimumStay {
		return false
	}
	day := Date(checkIn)
	if d.ValidFrom != nil && day.Before(Date(*d.ValidFrom)) {
		return false
	}
	if d.ValidTo != nil && !day.Before(Date(*d.ValidTo)) {
		return false
	}
	return true
}

type RentalFee struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	Amount     Money     `db:"-"`
	Type       FeeType   `db:"type"`
	IsRequired bool      `db:"is_required"`
}
