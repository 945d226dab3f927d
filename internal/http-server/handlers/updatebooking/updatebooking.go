package updatebooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

// Pointer fields distinguish omitted values from zero values.
type Request struct {
	BookingStart *time.Time `json:"booking_start"`
	BookingEnd   *time.Time `json:"booking_end"`
	Notes        *string    `json:"notes"`
}

type BookingUpdater interface {
	Booking(ctx context.Context, id int64) (models.Booking, error)
	UpdateBooking(ctx context.Context, updated models.Booking, stayChanged bool) error
}

type OwnershipChecker interface {
	IsBookingOwner(ctx context.Context, id int64, userID int64) (bool, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

func New(log *slog.Logger, checker OwnershipChecker, bookingService BookingUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.updatebooking.New"

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

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Invalid booking id"))

			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		isAdmin, err := checker.IsAdmin(r.Context(), userID)
		if err != nil {
			log.Error("failed to check user role", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to check user role"))

			return
		}

		if !isAdmin {
			owns, err := checker.IsBookingOwner(r.Context(), id, userID)
			if err != nil {
				log.Error("failed to check booking ownership", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Failed to check booking ownership"))

				return
			}

			if !owns {
				log.Warn("user tried to update not his booking", slog.Int64("userID", userID))

				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, resp.Error("You can update only your own bookings"))

				return
			}
		}

		existing, err := bookingService.Booking(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Booking not found"))

				return
			}

			log.Error("failed to fetch booking", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch booking"))

			return
		}

		updated := existing
		stayChanged := false
		if req.BookingStart != nil {
			updated.BookingStart = *req.BookingStart
			stayChanged = true
		}
		if req.BookingEnd != nil {
			updated.BookingEnd = *req.BookingEnd
			stayChanged = true
		}
		if req.Notes != nil {
			updated.Notes = *req.Notes
		}

		if !updated.BookingEnd.After(updated.BookingStart) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Booking end must be after booking start"))

			return
		}

		if err := bookingService.UpdateBooking(r.Context(), updated, stayChanged); err != nil {
			switch {
			case errors.Is(err, storage.ErrRoomUnavailable):
				log.Warn("room is unavailable", slog.Int64("bookingID", id))

				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error("Room is unavailable for the requested dates"))
			case errors.Is(err, storage.ErrBookingNotFound):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Booking not found"))
			default:
				log.Error("failed to update booking", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Failed to update booking"))
			}

			return
		}

		log.Info("booking updated", slog.Int64("bookingID", id))

		render.JSON(w, r, resp.OKWithData(updated))
	}
}
