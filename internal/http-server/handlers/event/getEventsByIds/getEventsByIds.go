package getEventsByIds

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventflow/internal/lib/api/query"
	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

type EventsResponse struct {
	response.Response
	Events []models.EventShort `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BatchGetter
type BatchGetter interface {
	GetByIDs(ctx context.Context, ids []int64) ([]models.EventShort, error)
}

func New(log *slog.Logger, getter BatchGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEventsByIds.New"

		log := log.With(slog.String("op", op))

		ids, err := query.IDs(r.URL.Query())
		if err != nil {
			log.Error("invalid ids", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		events, err := getter.GetByIDs(r.Context(), ids)
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("events retrieved", slog.Int("count", len(events)))

		render.JSON(w, r, EventsResponse{
			Response: response.OK(),
			Events:   events,
		})
	}
}
