package cancelbooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/storage"
)

type Response struct {
	resp.Response
	Status string `json:"status"`
}

type BookingCanceller interface {
	CancelBooking(ctx context.Context, id int64) error
}

type OwnershipChecker interface {
	IsBookingOwner(ctx context.Context, id int64, userID int64) (bool, error)
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// New cancels a booking by id. Owners may cancel their own bookings, admins
// may cancel any.
func New(log *slog.Logger, checker OwnershipChecker, bookingService BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cancelbooking.New"

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
				log.Warn("user tried to cancel not his booking", slog.Int64("userID", userID))

				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, resp.Error("You can cancel only your own bookings"))

				return
			}
		}

		if err := bookingService.CancelBooking(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrBookingNotFound) {
				log.Warn("booking not found", slog.Int64("bookingID", id))

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Booking not found"))

				return
			}

			log.Error("failed to cancel booking", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to cancel booking"))

			return
		}

		log.Info("booking cancelled successfully",
			slog.Int64("userID", userID),
			slog.Int64("bookingID", id),
		)

		render.JSON(w, r, Response{
			Response: resp.OK(),
			Status:   "cancelled",
		})
	}
}
