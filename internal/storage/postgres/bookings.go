package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

// SaveBooking inserts a booking unless the room already has an active booking
// overlapping the requested range.
func (r *PostgresRepo) SaveBooking(ctx context.Context, booking models.Booking) (int64, error) {
	const op = "storage.postgres.SaveBooking"

	var id int64
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO bookings (user_id, room_number, booking_start, booking_end, notes)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_number = $2
			  AND NOT cancelled
			  AND booking_start < $4
			  AND booking_end > $3
		)
		RETURNING id;`,
		booking.UserID,
		booking.RoomNumber,
		booking.BookingStart,
		booking.BookingEnd,
		booking.Notes,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrRoomUnavailable)
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *PostgresRepo) Booking(ctx context.Context, id int64) (models.Booking, error) {
	const op = "storage.postgres.Booking"

	var b models.Booking

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, room_number, booking_start, booking_end, notes, cancelled, created_at, modified_at
		FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.UserID, &b.RoomNumber, &b.BookingStart, &b.BookingEnd, &b.Notes, &b.Cancelled, &b.CreatedAt, &b.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}

		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return b, nil
}

// Bookings returns all bookings or only active ones depending on mode. A
// positive ownerID narrows the listing to that user.
func (r *PostgresRepo) Bookings(ctx context.Context, mode string, ownerID int64) ([]models.Booking, error) {
	const op = "storage.postgres.Bookings"

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, room_number, booking_start, booking_end, notes, cancelled, created_at, modified_at
		FROM bookings
		WHERE ($1 = 'all' OR (NOT cancelled AND $1 = 'active'))
		  AND ($2 <= 0 OR user_id = $2)
		ORDER BY booking_start`,
		mode,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.RoomNumber, &b.BookingStart, &b.BookingEnd, &b.Notes, &b.Cancelled, &b.CreatedAt, &b.ModifiedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// UpdateBooking rewrites the mutable fields of an active booking unless the
// new range overlaps another active booking of the same room.
func (r *PostgresRepo) UpdateBooking(ctx context.Context, booking models.Booking) error {
	const op = "storage.postgres.UpdateBooking"

	cmdTag, err := r.pool.Exec(
		ctx,
		`UPDATE bookings
		SET booking_start = $2, booking_end = $3, notes = $4, modified_at = now()
		WHERE id = $1 AND NOT cancelled
		  AND NOT EXISTS (
			SELECT 1 FROM bookings other
			WHERE other.room_number = bookings.room_number
			  AND other.id <> bookings.id
			  AND NOT other.cancelled
			  AND other.booking_start < $3
			  AND other.booking_end > $2
		)`,
		booking.ID,
		booking.BookingStart,
		booking.BookingEnd,
		booking.Notes,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		var active bool
		err := r.pool.QueryRow(
			ctx,
			`SELECT EXISTS(SELECT 1 FROM bookings WHERE id = $1 AND NOT cancelled)`,
			booking.ID,
		).Scan(&active)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if active {
			return fmt.Errorf("%s: %w", op, storage.ErrRoomUnavailable)
		}

		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

// CancelBooking soft-deletes a booking.
func (r *PostgresRepo) CancelBooking(ctx context.Context, id int64) error {
	const op = "storage.postgres.CancelBooking"

	cmdTag, err := r.pool.Exec(
		ctx,
		`UPDATE bookings SET cancelled = TRUE, modified_at = now() WHERE id = $1 AND NOT cancelled`,
		id,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
	}

	return nil
}

func (r *PostgresRepo) IsBookingOwner(ctx context.Context, id int64, userID int64) (bool, error) {
	const op = "storage.postgres.IsBookingOwner"

	var exists bool
	err := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM bookings WHERE id = $1 AND user_id = $2
		)`,
		id,
		userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}
