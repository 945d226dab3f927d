package models

import "time"

type ContextKey string

type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	PassHash  []byte
	IsAdmin   bool
}

type Booking struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	RoomNumber   int16     `json:"room_number"`
	BookingStart time.Time `json:"booking_start"`
	BookingEnd   time.Time `json:"booking_end"`
	Notes        string    `json:"notes"`
	Cancelled    bool      `json:"cancelled"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

type Todo struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Booking event kinds published to the notifications queue.
const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
)

type BookingEvent struct {
	Event        string    `json:"event"`
	BookingID    int64     `json:"booking_id"`
	RoomNumber   int16     `json:"room_number"`
	BookingStart time.Time `json:"booking_start"`
	BookingEnd   time.Time `json:"booking_end"`
}
