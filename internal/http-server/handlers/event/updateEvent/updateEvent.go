package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
	"eventflow/internal/models"
)

// PatchRequest mirrors models.EventPatch with validation on whatever fields
// are present. Absent fields stay nil and leave the stored value untouched.
type PatchRequest struct {
	Annotation        *string             `json:"annotation,omitempty" validate:"omitempty,min=20,max=2000"`
	Category          *int64              `json:"category,omitempty"`
	Description       *string             `json:"description,omitempty" validate:"omitempty,min=20,max=7000"`
	EventDate         *time.Time          `json:"event_date,omitempty"`
	Location          *models.Coordinates `json:"location,omitempty"`
	Paid              *bool               `json:"paid,omitempty"`
	ParticipantLimit  *int64              `json:"participant_limit,omitempty" validate:"omitempty,gte=0"`
	RequestModeration *bool               `json:"request_moderation,omitempty"`
	Title             *string             `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	StateAction       *models.StateAction `json:"state_action,omitempty" validate:"omitempty,oneof=SEND_TO_REVIEW CANCEL_REVIEW PUBLISH_EVENT REJECT_EVENT"`
}

type EventResponse struct {
	response.Response
	Event *models.EventFull `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=OwnerUpdater
type OwnerUpdater interface {
	UpdateByOwner(ctx context.Context, userID, eventID int64, patch models.EventPatch) (*models.EventFull, error)
}

func New(log *slog.Logger, updater OwnerUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

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

		patch, ok := DecodePatch(w, r, log)
		if !ok {
			return
		}

		event, err := updater.UpdateByOwner(r.Context(), userID, eventID, patch)
		if err != nil {
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("event updated", slog.Int64("event_id", eventID))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}

// DecodePatch reads and validates a patch body, answering the request
// itself on failure. Shared with the admin update handler.
func DecodePatch(w http.ResponseWriter, r *http.Request, log *slog.Logger) (models.EventPatch, bool) {
	var req PatchRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode request"))

		return models.EventPatch{}, false
	}

	if err := validator.New().Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		errors.As(err, &validateErr)

		log.Error("invalid request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(validateErr))

		return models.EventPatch{}, false
	}

	return models.EventPatch{
		Annotation:        req.Annotation,
		CategoryID:        req.Category,
		Description:       req.Description,
		EventDate:         req.EventDate,
		Location:          req.Location,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: req.RequestModeration,
		Title:             req.Title,
		StateAction:       req.StateAction,
	}, true
}
