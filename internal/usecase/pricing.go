package usecase

import (
	"time"

	"rental-booking/internal/data/entity"

	"go.uber.org/zap"
)

// discountPriority is the fixed application order: duration-based first, then
// timing-based, then first-time, then seasonal. Every discount is computed
// against the pre-discount subtotal; discounts never compound multiplicatively.
// The order is a policy default pending product sign-off.
var discountPriority = []entity.DiscountType{
	entity.DiscountLongStay,
	entity.DiscountWeekly,
	entity.DiscountMonthly,
	entity.DiscountEarlyBird,
	entity.DiscountLastMinute,
	entity.DiscountFirstTime,
	entity.DiscountSeasonal,
}

// PricingEngine turns a rental's pricing configuration and a date range into a
// full breakdown. It is a pure computation: no clock, no randomness, no I/O, so
// identical inputs always produce an identical snapshot.
type PricingEngine struct {
	taxRatePercent float64
	log            *zap.Logger
}

// NewPricingEngine takes the market tax rate as configuration; it is never
// hard-coded here.
func NewPricingEngine(taxRatePercent float64, log *zap.Logger) *PricingEngine {
	return &PricingEngine{
		taxRatePercent: taxRatePercent,
		log:            log.With(zap.String("service", "pricing")),
	}
}

// QuoteInput carries everything a quote depends on. Days come from the calendar
// so per-day price overrides participate; they are read, never written.
type QuoteInput struct {
	Config *entity.RentalPricingConfig
	Days   []*entity.CalendarDay
	Range  entity.DateRange
	Guests entity.GuestCounts
}

func (e *PricingEngine) Quote(input QuoteInput) (entity.BookingPricing, error) {
	config := input.Config
	r := input.Range

	if !r.IsValid() {
		return entity.BookingPricing{}, rejectValidation(ReasonInvalidRange, "check_out", "check-out must be after check-in")
	}
	if config.BasePrice.Amount <= 0 {
		return entity.BookingPricing{}, rejectValidation("invalid_base_price", "base_price", "base price must be positive")
	}

	currency := config.BasePrice.Currency
	nightly := config.NightlyBase()
	nights := r.Nights()

	overrides := make(map[time.Time]int64, len(input.Days))
	for _, day := range input.Days {
		if day.PriceOverride != nil {
			overrides[day.Date] = *day.PriceOverride
		}
	}

	var subtotal int64
	for _, day := range r.Days() {
		if override, ok := overrides[day]; ok {
			subtotal += override
			continue
		}
		subtotal += nightly.Scale(e.seasonalMultiplier(config, day)).Amount
	}

	pricing := entity.BookingPricing{
		BaseAmount:      nightly,
		Nights:          nights,
		Subtotal:        entity.NewMoney(subtotal, currency),
		SecurityDeposit: config.SecurityDeposit,
		Currency:        currency,
	}

	pricing.Discounts = e.applyDiscounts(config, r.CheckIn, nights, pricing.Subtotal)
	pricing.Fees = e.applyFees(config, input.Guests)

	taxable := subtotal - pricing.TotalDiscounts() + pricing.TotalFees()
	if e.taxRatePercent > 0 && taxable > 0 {
		tax := entity.NewMoney(taxable, currency).Percent(e.taxRatePercent)
		pricing.Taxes = append(pricing.Taxes, entity.PriceLine{Name: "tax", Amount: tax})
	}

	total := taxable + pricing.TotalTaxes()
	if total < 0 {
		total = 0
	}
	pricing.Total = entity.NewMoney(total, currency)

	return pricing, nil
}

// seasonalMultiplier resolves the active seasonal rate covering the day. When
// two active rates overlap, the one with the earlier start date wins; that is a
// deterministic tie-break, and the overlap is logged as a configuration warning
// rather than treated as an error.
func (e *PricingEngine) seasonalMultiplier(config *entity.RentalPricingConfig, day time.Time) float64 {
	var winner *entity.SeasonalRate
	for i := range config.SeasonalRates {
		rate := &config.SeasonalRates[i]
		if !rate.IsActive || !rate.Covers(day) {
			continue
		}
		if winner == nil {
			winner = rate
			continue
		}
		ignored := rate
		if rate.StartDate.Before(winner.StartDate) {
			ignored = winner
			winner = rate
		}
		e.log.Warn("Overlapping seasonal rates, earliest start wins",
			zap.String("rental_id", config.RentalID.String()),
			zap.Time("date", day),
			zap.String("kept", winner.Name),
			zap.String("ignored", ignored.Name),
		)
	}
	if winner == nil {
		return 1
	}
	return winner.PriceMultiplier
}

func (e *PricingEngine) applyDiscounts(config *entity.RentalPricingConfig, checkIn time.Time, nights int, subtotal entity.Money) []entity.PriceLine {
	var lines []entity.PriceLine
	for _, kind := range discountPriority {
		for _, discount := range config.Discounts {
			if discount.Type != kind || !discount.AppliesTo(checkIn, nights) {
				continue
			}
			var amount entity.Money
			if discount.IsPercentage {
				amount = subtotal.Percent(discount.Value)
			} else {
				amount = entity.MoneyFromFloat(discount.Value, subtotal.Currency)
			}
			if amount.Amount <= 0 {
				continue
			}
			name := discount.Name
			if name == "" {
				name = string(discount.Type)
			}
			lines = append(lines, entity.PriceLine{Name: name, Amount: amount})
		}
	}
	return lines
}

func (e *PricingEngine) applyFees(config *entity.RentalPricingConfig, guests entity.GuestCounts) []entity.PriceLine {
	var lines []entity.PriceLine

	if config.CleaningFee != nil && config.CleaningFee.Amount > 0 {
		lines = append(lines, entity.PriceLine{Name: "cleaning fee", Amount: *config.CleaningFee})
	}

	for _, fee := range config.Fees {
		switch {
		case fee.Type == entity.FeeCleaning && config.CleaningFee != nil:
			// already charged through the config-level cleaning fee
		case fee.Type == entity.FeeExtraGuest:
			extra := guests.Countable() - config.IncludedGuests
			if extra > 0 {
				lines = append(lines, entity.PriceLine{
					Name:   fee.Name,
					Amount: fee.Amount.Multiply(int64(extra)),
				})
			}
		case fee.Type == entity.FeePet:
			if guests.Pets > 0 {
				lines = append(lines, entity.PriceLine{Name: fee.Name, Amount: fee.Amount})
			}
		case fee.IsRequired:
			lines = append(lines, entity.PriceLine{Name: fee.Name, Amount: fee.Amount})
		}
	}

	return lines
}
