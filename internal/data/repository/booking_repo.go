package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"rental-booking/internal/data/entity"
	"rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	FindByRentalID(ctx context.Context, rentalID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByRentalID(ctx context.Context, rentalID uuid.UUID) (int64, error)
	FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByGuestID(ctx context.Context, guestID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, reference, rental_id, guest_id, owner_id, status,
	check_in_date, check_out_date, adults, children, infants, pets,
	pricing, payment_status, cancellation, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	pricing, err := json.Marshal(booking.Pricing)
	if err != nil {
		return fmt.Errorf("marshal pricing snapshot: %w", err)
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.Reference,
		booking.RentalID,
		booking.GuestID,
		booking.OwnerID,
		booking.Status,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Guests.Adults,
		booking.Guests.Children,
		booking.Guests.Infants,
		booking.Guests.Pets,
		pricing,
		booking.PaymentStatus,
		nil,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
			zap.String("rental_id", booking.RentalID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	var pricing []byte
	var cancellation []byte

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.RentalID,
		&booking.GuestID,
		&booking.OwnerID,
		&booking.Status,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.Guests.Adults,
		&booking.Guests.Children,
		&booking.Guests.Infants,
		&booking.Guests.Pets,
		&pricing,
		&booking.PaymentStatus,
		&cancellation,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(pricing) > 0 {
		if err := json.Unmarshal(pricing, &booking.Pricing); err != nil {
			return nil, fmt.Errorf("unmarshal pricing snapshot: %w", err)
		}
	}
	if len(cancellation) > 0 {
		booking.Cancellation = &entity.CancellationRecord{}
		if err := json.Unmarshal(cancellation, booking.Cancellation); err != nil {
			return nil, fmt.Errorf("unmarshal cancellation record: %w", err)
		}
	}

	booking.CheckInDate = entity.Date(booking.CheckInDate)
	booking.CheckOutDate = entity.Date(booking.CheckOutDate)
	return &booking, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) findMany(ctx context.Context, query string, args ...any) ([]*entity.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) FindByRentalID(ctx context.Context, rentalID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE rental_id = $1
		ORDER BY check_in_date DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.findMany(ctx, query, rentalID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by rental ID",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return nil, fmt.Errorf("find bookings by rental ID %s: %w", rentalID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByRentalID(ctx context.Context, rentalID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE rental_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, rentalID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by rental ID",
			zap.Error(err),
			zap.String("rental_id", rentalID.String()),
		)
		return 0, fmt.Errorf("count bookings by rental ID %s: %w", rentalID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE guest_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	bookings, err := r.findMany(ctx, query, guestID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by guest ID",
			zap.Error(err),
			zap.String("guest_id", guestID.String()),
		)
		return nil, fmt.Errorf("find bookings by guest ID %s: %w", guestID.String(), err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByGuestID(ctx context.Context, guestID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE guest_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, guestID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by guest ID",
			zap.Error(err),
			zap.String("guest_id", guestID.String()),
		)
		return 0, fmt.Errorf("count bookings by guest ID %s: %w", guestID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	pricing, err := json.Marshal(booking.Pricing)
	if err != nil {
		return fmt.Errorf("marshal pricing snapshot: %w", err)
	}

	var cancellation []byte
	if booking.Cancellation != nil {
		cancellation, err = json.Marshal(booking.Cancellation)
		if err != nil {
			return fmt.Errorf("marshal cancellation record: %w", err)
		}
	}

	query := `
		UPDATE bookings
		SET status = $2, pricing = $3, payment_status = $4, cancellation = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Status,
		pricing,
		booking.PaymentStatus,
		cancellation,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
