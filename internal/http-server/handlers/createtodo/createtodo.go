package createtodo

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
	Text string `json:"text" validate:"required"`
}

type TodoCreator interface {
	CreateTodo(ctx context.Context, userID int64, text string) (models.Todo, error)
}

func New(log *slog.Logger, todoService TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.createtodo.New"

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

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		todo, err := todoService.CreateTodo(r.Context(), userID, req.Text)
		if err != nil {
			log.Error("failed to create todo", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to create todo"))

			return
		}

		log.Info("todo created", slog.Int64("userID", userID), slog.Int64("todoID", todo.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp.OKWithData(todo))
	}
}
