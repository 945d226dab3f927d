package listtodos

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/jwt"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
	"github.com/SidhantUppal/roombook/internal/models"
)

type TodoLister interface {
	ListTodos(ctx context.Context, userID int64) ([]models.Todo, error)
}

func New(log *slog.Logger, todoService TodoLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.listtodos.New"

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

		todos, err := todoService.ListTodos(r.Context(), userID)
		if err != nil {
			log.Error("failed to get todos", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch todos"))

			return
		}

		if todos == nil {
			todos = []models.Todo{}
		}

		log.Info("todos fetched successfully", slog.Int("count", len(todos)))

		render.JSON(w, r, resp.OKWithData(todos))
	}
}
