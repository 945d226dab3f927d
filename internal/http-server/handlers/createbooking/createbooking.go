package createbooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

type Request struct {
	// room_number lands in a smallint column; 32767 is the ceiling.
	RoomNumber   int       `json:"room_number" validate:"required,gt=0,lte=32767"`
	BookingStart time.Time `json:"booking_start" validate:"required"`
	BookingEnd   time.Time `json:"booking_end" validate:"required"`
	Notes        string    `json:"notes"`
}

type Response struct {
	resp.Response
	BookingID int64 `json:"booking_id"`
}

type BookingCreator interface {
	CreateBooking(ctx context.Context, booking models.Booking) (int64, error)
}

func New(log *slog.Logger, bookingService BookingCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.createbooking.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := jwt.UserID(r.Context())
		if !ok {
			log.Error("unauthorized: no userID in context")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("Unauthorized"))

			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		if !req.BookingEnd.After(req.BookingStart) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Booking end must be after booking start"))

			return
		}

		if req.BookingStart.Before(time.Now()) {
			log.Warn("booking starts in the past", slog.Int64("userID", userID))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Booking cannot start in the past"))

			return
		}

		booking := models.Booking{
			UserID:       userID,
			RoomNumber:   int16(req.RoomNumber),
			BookingStart: req.BookingStart,
			BookingEnd:   req.BookingEnd,
			Notes:        req.Notes,
		}

		id, err := bookingService.CreateBooking(r.Context(), booking)
		if err != nil {
			if errors.Is(err, storage.ErrRoomUnavailable) {
				log.Warn("room is unavailable", slog.Int("room", req.RoomNumber))

				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error("Room is unavailable for the requested dates"))

				return
			}

			log.Error("failed to create booking", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to create booking"))

			return
		}

		log.Info("booking created", slog.Int64("userID", userID), slog.Int64("bookingID", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{
			Response:  resp.OK(),
			BookingID: id,
		})
	}
}
