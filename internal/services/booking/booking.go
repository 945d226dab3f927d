package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage/redis"
)

type Postgres interface {
	SaveBooking(ctx context.Context, booking models.Booking) (int64, error)
	Booking(ctx context.Context, id int64) (models.Booking, error)
	Bookings(ctx context.Context, mode string, ownerID int64) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, booking models.Booking) error
	CancelBooking(ctx context.Context, id int64) error
}

type Redis interface {
	ReserveNights(ctx context.Context, res redis.Reservation) error
	ReleaseNights(ctx context.Context, res redis.Reservation) error
	ReleaseStaleNights(ctx context.Context, res, keep redis.Reservation) error
}

type RabbitMQ interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}

type BookingService struct {
	log      *slog.Logger
	postgres Postgres
	redis    Redis
	rabbitmq RabbitMQ
}

func NewBookingService(log *slog.Logger, pg Postgres, r Redis, mq RabbitMQ) *BookingService {
	return &BookingService{
		log:      log,
		postgres: pg,
		redis:    r,
		rabbitmq: mq,
	}
}

// CreateBooking persists the booking, reserves its nights in the availability
// cache and publishes a created event. Postgres is the source of truth for
// overlap conflicts; a row whose nights cannot be reserved is cancelled again
// so the client never owns a booking it was told had failed.
func (s *BookingService) CreateBooking(ctx context.Context, booking models.Booking) (int64, error) {
	const op = "services.booking.CreateBooking"

	id, err := s.postgres.SaveBooking(ctx, booking)
	if err != nil {
		return 0, err
	}
	booking.ID = id

	if err := s.redis.ReserveNights(ctx, reservation(booking)); err != nil {
		if cancelErr := s.postgres.CancelBooking(ctx, id); cancelErr != nil {
			s.log.Error("failed to cancel booking after a reservation failure",
				slog.Int64("bookingID", id), sl.Err(cancelErr))
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// The booking stands at this point; a lost event only delays the mail.
	if err := s.rabbitmq.PublishBookingEvent(ctx, event(models.EventBookingCreated, booking)); err != nil {
		s.log.Warn("failed to publish created event",
			slog.Int64("bookingID", id), sl.Err(err))
	}

	return id, nil
}

// CancelBooking soft-deletes the booking, frees its nights and publishes a
// cancelled event. Once the row is cancelled the cache and the event are best
// effort: leftover night keys expire on their own TTL.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) error {
	booking, err := s.postgres.Booking(ctx, id)
	if err != nil {
		return err
	}

	if err := s.postgres.CancelBooking(ctx, id); err != nil {
		return err
	}

	if err := s.redis.ReleaseNights(ctx, reservation(booking)); err != nil {
		s.log.Warn("failed to release nights of a cancelled booking",
			slog.Int64("bookingID", id), sl.Err(err))
	}

	if err := s.rabbitmq.PublishBookingEvent(ctx, event(models.EventBookingCancelled, booking)); err != nil {
		s.log.Warn("failed to publish cancelled event",
			slog.Int64("bookingID", id), sl.Err(err))
	}

	return nil
}

// UpdateBooking rewrites the mutable fields. When the stay moves, the new
// nights are reserved first and the vacated ones released only after the row
// is persisted, so a rejected reschedule never drops the guard the booking
// already holds. Nights shared with the current stay carry this booking's id
// and do not conflict with themselves.
func (s *BookingService) UpdateBooking(ctx context.Context, updated models.Booking, stayChanged bool) error {
	if !stayChanged {
		return s.postgres.UpdateBooking(ctx, updated)
	}

	existing, err := s.postgres.Booking(ctx, updated.ID)
	if err != nil {
		return err
	}

	if err := s.redis.ReserveNights(ctx, reservation(updated)); err != nil {
		return err
	}

	if err := s.postgres.UpdateBooking(ctx, updated); err != nil {
		// Hand back the nights the current stay does not cover.
		if relErr := s.redis.ReleaseStaleNights(ctx, reservation(updated), reservation(existing)); relErr != nil {
			s.log.Warn("failed to hand back nights of a rejected reschedule",
				slog.Int64("bookingID", updated.ID), sl.Err(relErr))
		}

		return err
	}

	if err := s.redis.ReleaseStaleNights(ctx, reservation(existing), reservation(updated)); err != nil {
		s.log.Warn("failed to release the vacated nights of a reschedule",
			slog.Int64("bookingID", updated.ID), sl.Err(err))
	}

	return nil
}

func (s *BookingService) Booking(ctx context.Context, id int64) (models.Booking, error) {
	return s.postgres.Booking(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context, mode string, ownerID int64) ([]models.Booking, error) {
	return s.postgres.Bookings(ctx, mode, ownerID)
}

func reservation(b models.Booking) redis.Reservation {
	return redis.Reservation{
		BookingID:    b.ID,
		RoomNumber:   b.RoomNumber,
		UserID:       b.UserID,
		BookingStart: b.BookingStart,
		BookingEnd:   b.BookingEnd,
	}
}

func event(kind string, b models.Booking) models.BookingEvent {
	return models.BookingEvent{
		Event:        kind,
		BookingID:    b.ID,
		RoomNumber:   b.RoomNumber,
		BookingStart: b.BookingStart,
		BookingEnd:   b.BookingEnd,
	}
}
