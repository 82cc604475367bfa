package getUserEvent

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

type EventResponse struct {
	response.Response
	Event *models.EventFull `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OwnerGetter
type OwnerGetter interface {
	GetByOwner(ctx context.Context, userID, eventID int64) (*models.EventFull, error)
}

func New(log *slog.Logger, getter OwnerGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getUserEvent.New"

		log := log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))

			return
		}

		event, err := getter.GetByOwner(r.Context(), userID, eventID)
		if err != nil {
			log.Error("failed to get event", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("event retrieved", slog.Int64("event_id", eventID))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
