package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SidhantUppal/roombook/internal/storage"
)

type RedisRepo struct {
	client *redis.Client
}

// Reservation mirrors the booking fields the availability guard needs.
type Reservation struct {
	BookingID    int64     `json:"booking_id"`
	RoomNumber   int16     `json:"room_number"`
	UserID       int64     `json:"user_id"`
	BookingStart time.Time `json:"booking_start"`
	BookingEnd   time.Time `json:"booking_end"`
}

func New(ctx context.Context, address string, password string, db int) (*RedisRepo, error) {
	const op = "storage.redis.New"

	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisRepo{client: rdb}, nil
}

// ReserveNights marks every night of the stay as taken. A night already held
// by a different booking means the room is unavailable.
func (r *RedisRepo) ReserveNights(ctx context.Context, res Reservation) error {
	const op = "storage.redis.ReserveNights"

	keys := nightKeys(res.RoomNumber, res.BookingStart, res.BookingEnd)
	if len(keys) == 0 {
		return storage.ErrPastDate
	}

	for _, key := range keys {
		taken, err := r.heldByOther(ctx, key, res.BookingID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return storage.ErrRoomUnavailable
		}
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ttl := time.Until(res.BookingEnd)
	if ttl <= 0 {
		return storage.ErrPastDate
	}

	for _, key := range keys {
		if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

// ReleaseNights frees the night keys of a cancelled booking.
func (r *RedisRepo) ReleaseNights(ctx context.Context, res Reservation) error {
	const op = "storage.redis.ReleaseNights"

	keys := nightKeys(res.RoomNumber, res.BookingStart, res.BookingEnd)
	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ReleaseStaleNights frees the nights held for res that keep still covers no
// part of. Nights shared by both stays are left in place so a reschedule never
// drops keys the booking still holds.
func (r *RedisRepo) ReleaseStaleNights(ctx context.Context, res, keep Reservation) error {
	const op = "storage.redis.ReleaseStaleNights"

	stale := staleNightKeys(res, keep)
	if len(stale) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, stale...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func staleNightKeys(res, keep Reservation) []string {
	kept := make(map[string]struct{})
	for _, key := range nightKeys(keep.RoomNumber, keep.BookingStart, keep.BookingEnd) {
		kept[key] = struct{}{}
	}

	var stale []string
	for _, key := range nightKeys(res.RoomNumber, res.BookingStart, res.BookingEnd) {
		if _, ok := kept[key]; !ok {
			stale = append(stale, key)
		}
	}

	return stale
}

func (r *RedisRepo) heldByOther(ctx context.Context, key string, bookingID int64) (bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil // key is free
	}
	if err != nil {
		return false, err
	}

	var held Reservation
	if err := json.Unmarshal([]byte(val), &held); err != nil {
		return false, err
	}

	return held.BookingID != bookingID, nil
}

// nightKeys lists one key per night of the stay, checkout day excluded. A
// stay contained in a single day still counts as one night.
func nightKeys(room int16, start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}

	first := start.Truncate(24 * time.Hour)
	last := end.Truncate(24 * time.Hour)
	if !last.After(first) {
		last = first.Add(24 * time.Hour)
	}

	var keys []string
	for d := first; d.Before(last); d = d.Add(24 * time.Hour) {
		keys = append(keys, fmt.Sprintf("room:%d:%s", room, d.Format("2006-01-02")))
	}

	return keys
}

// Close closes the connection to redis.
func (r *RedisRepo) Close() {
	r.client.Close()
}
