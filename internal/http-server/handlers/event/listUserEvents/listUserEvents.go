package listUserEvents

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OwnerLister
type OwnerLister interface {
	ListByOwner(ctx context.Context, userID int64, page storage.Page) ([]models.EventShort, error)
}

func New(log *slog.Logger, lister OwnerLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.listUserEvents.New"

		log := log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		page, err := query.Page(r.URL.Query())
		if err != nil {
			log.Error("invalid paging", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		events, err := lister.ListByOwner(r.Context(), userID, page)
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
