package deletetodo

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

type TodoDeleter interface {
	DeleteTodo(ctx context.Context, id, userID int64) error
}

func New(log *slog.Logger, todoService TodoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.deletetodo.New"

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
			render.JSON(w, r, resp.Error("Invalid todo id"))

			return
		}

		if err := todoService.DeleteTodo(r.Context(), id, userID); err != nil {
			if errors.Is(err, storage.ErrTodoNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Todo not found"))

				return
			}

			log.Error("failed to delete todo", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to delete todo"))

			return
		}

		log.Info("todo deleted", slog.Int64("todoID", id))

		render.JSON(w, r, resp.OK())
	}
}
