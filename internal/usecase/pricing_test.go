package usecase

import (
	"testing"

	"rental-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func baseConfig() *entity.RentalPricingConfig {
	return &entity.RentalPricingConfig{
		RentalID:        uuid.New(),
		BasePrice:       entity.NewMoney(10000, entity.CurrencyDOP),
		PricingType:     entity.PricingPerNight,
		SecurityDeposit: entity.NewMoney(20000, entity.CurrencyDOP),
		MinimumStay:     1,
		IncludedGuests:  2,
	}
}

func quote(t *testing.T, engine *PricingEngine, config *entity.RentalPricingConfig, r entity.DateRange, guests entity.GuestCounts, days []*entity.CalendarDay) entity.BookingPricing {
	t.Helper()
	pricing, err := engine.Quote(QuoteInput{Config: config, Days: days, Range: r, Guests: guests})
	require.NoError(t, err)
	return pricing
}

func TestQuote_Breakdown(t *testing.T) {
	engine := NewPricingEngine(10, testLogger())
	config := baseConfig()
	cleaning := entity.NewMoney(5000, entity.CurrencyDOP)
	config.CleaningFee = &cleaning

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 13))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 2}, nil)

	// 3 nights x 100.00 + 50.00 cleaning, 10% tax on 350.00
	require.Equal(t, int64(30000), pricing.Subtotal.Amount)
	require.Equal(t, int64(5000), pricing.TotalFees())
	require.Equal(t, int64(3500), pricing.TotalTaxes())
	require.Equal(t, int64(38500), pricing.Total.Amount)
	require.Equal(t, 3, pricing.Nights)

	// Deposit rides along for display but never enters the total.
	require.Equal(t, int64(20000), pricing.SecurityDeposit.Amount)
}

func TestQuote_Deterministic(t *testing.T) {
	engine := NewPricingEngine(18, testLogger())
	config := baseConfig()
	config.SeasonalRates = []entity.SeasonalRate{{
		Name:            "high season",
		StartDate:       date(2026, 7, 1),
		EndDate:         date(2026, 8, 1),
		PriceMultiplier: 1.5,
		IsActive:        true,
	}}
	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 15))
	guests := entity.GuestCounts{Adults: 2}

	first := quote(t, engine, config, r, guests, nil)
	second := quote(t, engine, config, r, guests, nil)
	require.Equal(t, first, second, "same inputs must produce an identical breakdown")
}

func TestQuote_SeasonalRateHalfOpen(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.SeasonalRates = []entity.SeasonalRate{{
		Name:            "festival",
		StartDate:       date(2026, 7, 11),
		EndDate:         date(2026, 7, 12),
		PriceMultiplier: 2,
		IsActive:        true,
	}}

	// July 10 normal, July 11 doubled, July 12 normal again (end date exclusive).
	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 13))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, nil)
	require.Equal(t, int64(40000), pricing.Subtotal.Amount)
}

func TestQuote_OverlappingSeasonsEarliestStartWins(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.SeasonalRates = []entity.SeasonalRate{
		{Name: "late", StartDate: date(2026, 7, 5), EndDate: date(2026, 7, 20), PriceMultiplier: 3, IsActive: true},
		{Name: "early", StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 20), PriceMultiplier: 2, IsActive: true},
	}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 11))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, nil)
	require.Equal(t, int64(20000), pricing.Subtotal.Amount, "earlier start date must win the overlap")
}

func TestQuote_OverlapWarningNamesTheWinner(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	engine := NewPricingEngine(0, zap.New(core))
	config := baseConfig()
	// The later-listed rate has the earlier start and wins; the warning must
	// report it as kept, not as ignored.
	config.SeasonalRates = []entity.SeasonalRate{
		{Name: "late", StartDate: date(2026, 7, 5), EndDate: date(2026, 7, 20), PriceMultiplier: 3, IsActive: true},
		{Name: "early", StartDate: date(2026, 7, 1), EndDate: date(2026, 7, 20), PriceMultiplier: 2, IsActive: true},
	}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 11))
	quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, nil)

	entries := logs.FilterMessage("Overlapping seasonal rates, earliest start wins").All()
	require.NotEmpty(t, entries)
	fields := entries[0].ContextMap()
	require.Equal(t, "early", fields["kept"])
	require.Equal(t, "late", fields["ignored"])
}

func TestQuote_DayOverrideBeatsSeasonalRate(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.SeasonalRates = []entity.SeasonalRate{{
		StartDate: date(2026, 7, 1), EndDate: date(2026, 8, 1), PriceMultiplier: 2, IsActive: true,
	}}

	override := int64(7500)
	days := []*entity.CalendarDay{{
		RentalID:      config.RentalID,
		Date:          date(2026, 7, 10),
		IsAvailable:   true,
		PriceOverride: &override,
	}}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 12))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, days)
	// Overridden day 75.00, seasonal day 200.00
	require.Equal(t, int64(27500), pricing.Subtotal.Amount)
}

func TestQuote_DiscountsAgainstPreDiscountSubtotal(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	minStay := 7
	config.Discounts = []entity.RentalDiscount{
		{Type: entity.DiscountWeekly, Name: "weekly", Value: 10, IsPercentage: true, MinimumStay: &minStay, IsActive: true},
		{Type: entity.DiscountLongStay, Name: "long stay", Value: 5, IsPercentage: true, IsActive: true},
	}

	r := entity.NewDateRange(date(2026, 7, 1), date(2026, 7, 8))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 2}, nil)

	// Subtotal 700.00; both discounts computed on it, not on each other.
	require.Equal(t, int64(70000), pricing.Subtotal.Amount)
	require.Equal(t, int64(3500+7000), pricing.TotalDiscounts())
	require.Equal(t, int64(70000-10500), pricing.Total.Amount)

	// Priority order puts long_stay before weekly.
	require.Equal(t, "long stay", pricing.Discounts[0].Name)
	require.Equal(t, "weekly", pricing.Discounts[1].Name)
}

func TestQuote_DiscountWindowGate(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	from := date(2026, 8, 1)
	to := date(2026, 9, 1)
	config.Discounts = []entity.RentalDiscount{{
		Type: entity.DiscountEarlyBird, Value: 20, IsPercentage: true,
		ValidFrom: &from, ValidTo: &to, IsActive: true,
	}}

	julyStay := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 12))
	require.Zero(t, quote(t, engine, config, julyStay, entity.GuestCounts{Adults: 1}, nil).TotalDiscounts())

	augustStay := entity.NewDateRange(date(2026, 8, 10), date(2026, 8, 12))
	require.Equal(t, int64(4000), quote(t, engine, config, augustStay, entity.GuestCounts{Adults: 1}, nil).TotalDiscounts())
}

func TestQuote_GuestAndPetFees(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.Fees = []entity.RentalFee{
		{Name: "extra guest", Type: entity.FeeExtraGuest, Amount: entity.NewMoney(1500, entity.CurrencyDOP)},
		{Name: "pet fee", Type: entity.FeePet, Amount: entity.NewMoney(2500, entity.CurrencyDOP)},
		{Name: "parking", Type: entity.FeeParking, Amount: entity.NewMoney(1000, entity.CurrencyDOP), IsRequired: true},
	}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 11))

	// 4 countable guests against 2 included: 2 x extra guest fee. Infants free.
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 3, Children: 1, Infants: 2, Pets: 1}, nil)
	require.Equal(t, int64(2*1500+2500+1000), pricing.TotalFees())

	// No pets, no extras: only the required fee.
	pricing = quote(t, engine, config, r, entity.GuestCounts{Adults: 2}, nil)
	require.Equal(t, int64(1000), pricing.TotalFees())
}

func TestQuote_FixedDiscountRoundsHalfUp(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.Discounts = []entity.RentalDiscount{{
		Type: entity.DiscountLongStay, Name: "promo", Value: 2500.5, IsPercentage: false, IsActive: true,
	}}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 11))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, nil)
	require.Equal(t, int64(2501), pricing.TotalDiscounts())
}

func TestQuote_TotalNeverNegative(t *testing.T) {
	engine := NewPricingEngine(0, testLogger())
	config := baseConfig()
	config.Discounts = []entity.RentalDiscount{{
		Type: entity.DiscountLongStay, Value: 50000, IsPercentage: false, IsActive: true,
	}}

	r := entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 11))
	pricing := quote(t, engine, config, r, entity.GuestCounts{Adults: 1}, nil)
	require.Zero(t, pricing.Total.Amount)
}

func TestQuote_RejectsInvalidInput(t *testing.T) {
	engine := NewPricingEngine(18, testLogger())

	_, err := engine.Quote(QuoteInput{
		Config: baseConfig(),
		Range:  entity.DateRange{CheckIn: date(2026, 7, 10), CheckOut: date(2026, 7, 10)},
		Guests: entity.GuestCounts{Adults: 1},
	})
	var rejection *Rejection
	require.ErrorAs(t, err, &rejection)
	require.Equal(t, KindValidation, rejection.Kind)

	zeroPrice := baseConfig()
	zeroPrice.BasePrice = entity.NewMoney(0, entity.CurrencyDOP)
	_, err = engine.Quote(QuoteInput{
		Config: zeroPrice,
		Range:  entity.NewDateRange(date(2026, 7, 10), date(2026, 7, 12)),
		Guests: entity.GuestCounts{Adults: 1},
	})
	require.ErrorAs(t, err, &rejection)
}
