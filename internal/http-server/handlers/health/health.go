package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	resp "github.com/SidhantUppal/roombook/internal/lib/api/response"
	"github.com/SidhantUppal/roombook/internal/lib/logger/sl"
)

type Pinger interface {
	Ping(ctx context.Context) error
	Stat() map[string]string
}

func New(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.health.New"

		if err := db.Ping(r.Context()); err != nil {
			log.Error("database is down", slog.String("op", op), sl.Err(err))

			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, resp.Error("database is down"))

			return
		}

		render.JSON(w, r, resp.OKWithData(db.Stat()))
	}
}
