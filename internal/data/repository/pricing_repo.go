package repository

import (
	"context"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PricingRepository loads the full pricing configuration for a rental: the base
// config row plus its seasonal rates, discounts and fees, in stored order.
type PricingRepository interface {
	FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.RentalPricingConfig, error)
}

type pricingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingRepository(db database.PgxIface, log *zap.Logger) PricingRepository {
	return &pricingRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing")),
	}
}

func (r *pricingRepository) FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.RentalPricingConfig, error) {
	query := `
		SELECT rental_id, base_price, currency, pricing_type, security_deposit,
		       cleaning_fee, minimum_stay, maximum_stay, included_guests
		FROM rental_pricing_configs
		WHERE rental_id = $1
	`

	var config entity.RentalPricingConfig
	var currency entity.Currency
	var cleaningFee *int64
	err := r.db.QueryRow(ctx, query, rentalID).Scan(
		&config.RentalID,
		&config.BasePrice.Amount,
		&currency,
		&config.PricingType,
		&config.SecurityDeposit.Amount,
		&cleaningFee,
		&config.MinimumStay,
		&config.MaximumStay,
		&config.IncludedGuests,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pricing config",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find pricing config for rental %s: %w", rentalID.String(), err)
	}

	config.BasePrice.Currency = currency
	config.SecurityDeposit.Currency = currency
	if cleaningFee != nil {
		fee := entity.NewMoney(*cleaningFee, currency)
		config.CleaningFee = &fee
	}

	if config.SeasonalRates, err = r.findSeasonalRates(ctx, rentalID); err != nil {
		return nil, err
	}
	if config.Discounts, err = r.findDiscounts(ctx, rentalID); err != nil {
		return nil, err
	}
	if config.Fees, err = r.findFees(ctx, rentalID, currency); err != nil {
		return nil, err
	}

	return &config, nil
}

func (r *pricingRepository) findSeasonalRates(ctx context.Context, rentalID uuid.UUID) ([]entity.SeasonalRate, error) {
	query := `
		SELECT id, name, start_date, end_date, price_multiplier, is_active
		FROM seasonal_rates
		WHERE rental_id = $1
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to find seasonal rates", zap.Error(err), zap.String("rental_id", rentalID.String()))
		return nil, fmt.Errorf("find seasonal rates for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var rates []entity.SeasonalRate
	for rows.Next() {
		var rate entity.SeasonalRate
		if err := rows.Scan(&rate.ID, &rate.Name, &rate.StartDate, &rate.EndDate, &rate.PriceMultiplier, &rate.IsActive); err != nil {
			return nil, fmt.Errorf("scan seasonal rate row: %w", err)
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

func (r *pricingRepository) findDiscounts(ctx context.Context, rentalID uuid.UUID) ([]entity.RentalDiscount, error) {
	query := `
		SELECT id, type, name, value, is_percentage, minimum_stay, valid_from, valid_to, is_active
		FROM rental_discounts
		WHERE rental_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to find discounts", zap.Error(err), zap.String("rental_id", rentalID.String()))
		return nil, fmt.Errorf("find discounts for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var discounts []entity.RentalDiscount
	for rows.Next() {
		var discount entity.RentalDiscount
		err := rows.Scan(
			&discount.ID,
			&discount.Type,
			&discount.Name,
			&discount.Value,
			&discount.IsPercentage,
			&discount.MinimumStay,
			&discount.ValidFrom,
			&discount.ValidTo,
			&discount.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("scan discount row: %w", err)
		}
		discounts = append(discounts, discount)
	}

	return discounts, nil
}

func (r *pricingRepository) findFees(ctx context.Context, rentalID uuid.UUID, currency entity.Currency) ([]entity.RentalFee, error) {
	query := `
		SELECT id, name, amount, type, is_required
		FROM rental_fees
		WHERE rental_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, rentalID)
	if err != nil {
		r.log.Error("Failed to find fees", zap.Error(err), zap.String("rental_id", rentalID.String()))
		return nil, fmt.Errorf("find fees for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var fees []entity.RentalFee
	for rows.Next() {
		var fee entity.RentalFee
		if err := rows.Scan(&fee.ID, &fee.Name, &fee.Amount.Amount, &fee.Type, &fee.IsRequired); err != nil {
			return nil, fmt.Errorf("scan fee row: %w", err)
		}
		fee.Amount.Currency = currency
		fees = append(fees, fee)
	}

	return fees, nil
}
