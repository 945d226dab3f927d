package updatetodo

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
	"github.com/SidhantUppal/roombook/internal/models"
	"github.com/SidhantUppal/roombook/internal/storage"
)

// Pointer fields distinguish omitted values from zero values, so completed
// can be reset to false.
type Request struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

type TodoUpdater interface {
	UpdateTodo(ctx context.Context, id, userID int64, text *string, completed *bool) (models.Todo, error)
}

func New(log *slog.Logger, todoService TodoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.updatetodo.New"

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

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		todo, err := todoService.UpdateTodo(r.Context(), id, userID, req.Text, req.Completed)
		if err != nil {
			if errors.Is(err, storage.ErrTodoNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Todo not found"))

				return
			}

			log.Error("failed to update todo", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to update todo"))

			return
		}

		log.Info("todo updated", slog.Int64("todoID", id))

		render.JSON(w, r, resp.OKWithData(todo))
	}
}
