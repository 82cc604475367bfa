package listEvents

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventflow/internal/lib/api/query"
	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
	"eventflow/internal/storage"
)

type EventsResponse struct {
	response.Response
	Events []models.EventShort `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PublicLister
type PublicLister interface {
	ListPublic(ctx context.Context, filter storage.EventsFilter, page storage.Page, requestPath, callerAddr string) ([]models.EventShort, error)
}

func New(log *slog.Logger, lister PublicLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.listEvents.New"

		log := log.With(slog.String("op", op))

		filter, err := query.Filter(r.URL.Query())
		if err != nil {
			log.Error("invalid filter", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		page, err := query.Page(r.URL.Query())
		if err != nil {
			log.Error("invalid paging", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		events, err := lister.ListPublic(r.Context(), filter, page, r.URL.Path, r.RemoteAddr)
		if err != nil {
			log.Error("failed to list events", sl.Err(err))
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
