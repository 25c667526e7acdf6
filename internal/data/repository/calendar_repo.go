package repository

import (
	"context"
	"fmt"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarRepository persists per-(rental, date) day records. Days never stored
// simply don't exist as rows; the calendar service synthesizes defaults for them.
type CalendarRepository interface {
	FindRange(ctx context.Context, rentalID uuid.UUID, start, end time.Time) ([]*entity.CalendarDay, error)
	// UpsertDays writes every given day inside one transaction, all-or-nothing.
	UpsertDays(ctx context.Context, days []*entity.CalendarDay) error
}

type calendarRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCalendarRepository(db database.PgxIface, log *zap.Logger) CalendarRepository {
	return &calendarRepository{
		db:  db,
		log: log.With(zap.String("repository", "calendar")),
	}
}

func (r *calendarRepository) FindRange(ctx context.Context, rentalID uuid.UUID, start, end time.Time) ([]*entity.CalendarDay, error) {
	query := `
		SELECT rental_id, date, is_available, is_blocked, block_reason, price_override, minimum_stay, booking_id
		FROM calendar_days
		WHERE rental_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, rentalID, start, end)
	if err != nil {
		r.log.Error("Failed to find calendar range",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
			zap.Time("start", start),
			zap.Time("end", end),
		)
		return nil, fmt.Errorf("find calendar range for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	var days []*entity.CalendarDay
	for rows.Next() {
		var day entity.CalendarDay
		err := rows.Scan(
			&day.RentalID,
			&day.Date,
			&day.IsAvailable,
			&day.IsBlocked,
			&day.BlockReason,
			&day.PriceOverride,
			&day.MinimumStay,
			&day.BookingID,
		)
		if err != nil {
			r.log.Error("Failed to scan calendar day row", zap.Error(err))
			return nil, fmt.Errorf("scan calendar day row: %w", err)
		}
		day.Date = entity.Date(day.Date)
		days = append(days, &day)
	}

	return days, nil
}

func (r *calendarRepository) UpsertDays(ctx context.Context, days []*entity.CalendarDay) error {
	if len(days) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin calendar upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO calendar_days (rental_id, date, is_available, is_blocked, block_reason, price_override, minimum_stay, booking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (rental_id, date) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			is_blocked = EXCLUDED.is_blocked,
			block_reason = EXCLUDED.block_reason,
			price_override = EXCLUDED.price_override,
			minimum_stay = EXCLUDED.minimum_stay,
			booking_id = EXCLUDED.booking_id
	`

	for _, day := range days {
		_, err := tx.Exec(ctx, query,
			day.RentalID,
			day.Date,
			day.IsAvailable,
			day.IsBlocked,
			day.BlockReason,
			day.PriceOverride,
			day.MinimumStay,
			day.BookingID,
		)
		if err != nil {
			r.log.Error("Failed to upsert calendar day",
				zap.Error(err),
				zap.String("rental_id", day.RentalID.String()),
				zap.Time("date", day.Date),
			)
			return fmt.Errorf("upsert calendar day %s: %w", day.Date.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit calendar upsert: %w", err)
	}

	return nil
}
