package listbookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
)

type Request struct {
	Mode string `query:"mode" validate:"required,oneof=all active"`
}

type BookingLister interface {
	ListBookings(ctx context.Context, mode string, ownerID int64) ([]models.Booking, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// New lists bookings. Admins see every booking, regular users only their own.
func New(log *slog.Logger, admins AdminChecker, bookingService BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.listbookings.New"

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

		req := Request{
			Mode: r.URL.Query().Get("mode"),
		}
		if req.Mode == "" {
			req.Mode = "active"
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		isAdmin, err := admins.IsAdmin(r.Context(), userID)
		if err != nil {
			log.Error("failed to check user role", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to check user role"))

			return
		}

		ownerID := userID
		if isAdmin {
			ownerID = 0 // admins see everything
		}

		bookings, err := bookingService.ListBookings(r.Context(), req.Mode, ownerID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch bookings"))

			return
		}

		log.Info("bookings fetched successfully",
			slog.Int("count", len(bookings)),
			slog.String("mode", req.Mode),
		)

		render.JSON(w, r, resp.OKWithData(bookings))
	}
}
