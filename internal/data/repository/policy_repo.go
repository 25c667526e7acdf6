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

type PolicyRepository interface {
	FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.CancellationPolicy, error)
}

type policyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPolicyRepository(db database.PgxIface, log *zap.Logger) PolicyRepository {
	return &policyRepository{
		db:  db,
		log: log.With(zap.String("repository", "policy")),
	}
}

func (r *policyRepository) FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*entity.CancellationPolicy, error) {
	query := `
		SELECT rental_id, type, grace_period_hours
		FROM cancellation_policies
		WHERE rental_id = $1
	`

	var policy entity.CancellationPolicy
	err := r.db.QueryRow(ctx, query, rentalID).Scan(
		&policy.RentalID,
		&policy.Type,
		&policy.GracePeriodHours,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cancellation policy",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find cancellation policy for rental %s: %w", rentalID.String(), err)
	}

	scheduleQuery := `
		SELECT days_before_check_in, refund_percentage
		FROM refund_schedules
		WHERE rental_id = $1
		ORDER BY days_before_check_in
	`

	rows, err := r.db.Query(ctx, scheduleQuery, rentalID)
	if err != nil {
		r.log.Error("Failed to find refund schedule",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find refund schedule for rental %s: %w", rentalID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry entity.RefundSchedule
		if err := rows.Scan(&entry.DaysBeforeCheckIn, &entry.RefundPercentage); err != nil {
			return nil, fmt.Errorf("scan refund schedule row: %w", err)
		}
		policy.Schedule = append(policy.Schedule, entry)
	}

	if err := policy.Validate(); err != nil {
		r.log.Error("Stored cancellation policy is invalid",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("cancellation policy for rental %s: %w", rentalID.String(), err)
	}

	return &policy, nil
}
