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

type RentalRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Rental, error)
}

type rentalRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRentalRepository(db database.PgxIface, log *zap.Logger) RentalRepository {
	return &rentalRepository{
		db:  db,
		log: log.With(zap.String("repository", "rental")),
	}
}

func (r *rentalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Rental, error) {
	query := `
		SELECT id, owner_id, title, max_guests, pets_allowed, advance_notice_hours, created_at, updated_at
		FROM rentals
		WHERE id = $1 AND deleted_at IS NULL
	`

	var rental entity.Rental
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rental.ID,
		&rental.OwnerID,
		&rental.Title,
		&rental.Rules.MaxGuests,
		&rental.Rules.PetsAllowed,
		&rental.Availability.AdvanceNoticeHours,
		&rental.CreatedAt,
		&rental.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rental by ID",
			zap.Error(err),
			zap.String("rental_id", id.String()),
		)
		return nil, fmt.Errorf("find rental by ID %s: %w", id.String(), err)
	}

	return &rental, nil
}
