package adminUpdateEvent

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventflow/internal/http-server/handlers/event/updateEvent"
	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

type EventResponse struct {
	response.Response
	Event *models.EventFull `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AdminUpdater
type AdminUpdater interface {
	UpdateByAdmin(ctx context.Context, eventID int64, patch models.EventPatch) (*models.EventFull, error)
}

func New(log *slog.Logger, updater AdminUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.adminUpdateEvent.New"

		log := log.With(slog.String("op", op))

		eventID, err := strconv.ParseInt(chi.URLParam(r, "eventId"), 10, 64)
		if err != nil {
			log.Error("invalid event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid event id"))

			return
		}

		patch, ok := updateEvent.DecodePatch(w, r, log)
		if !ok {
			return
		}

		event, err := updater.UpdateByAdmin(r.Context(), eventID, patch)
		if err != nil {
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("event updated by admin",
			slog.Int64("event_id", eventID),
			slog.String("state", string(event.State)),
		)

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
