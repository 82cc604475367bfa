package createEvent

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

type EventRequest struct {
	Annotation        string             `json:"annotation" validate:"required,min=20,max=2000"`
	Category          int64              `json:"category" validate:"required"`
	Description       string             `json:"description" validate:"required,min=20,max=7000"`
	EventDate         time.Time          `json:"event_date" validate:"required"`
	Location          models.Coordinates `json:"location"`
	Paid              bool               `json:"paid"`
	ParticipantLimit  int64              `json:"participant_limit" validate:"gte=0"`
	RequestModeration *bool              `json:"request_moderation"`
	Title             string             `json:"title" validate:"required,min=3,max=120"`
}

type EventResponse struct {
	response.Response
	Event *models.EventFull `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	Create(ctx context.Context, userID int64, dto models.NewEvent) (*models.EventFull, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(slog.String("op", op))

		userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
		if err != nil {
			log.Error("invalid user id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user id"))

			return
		}

		var req EventRequest

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))

			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))

			return
		}

		// request moderation defaults to on when the field is absent
		moderation := true
		if req.RequestModeration != nil {
			moderation = *req.RequestModeration
		}

		event, err := creator.Create(r.Context(), userID, models.NewEvent{
			Annotation:        req.Annotation,
			CategoryID:        req.Category,
			Description:       req.Description,
			EventDate:         req.EventDate,
			Location:          req.Location,
			Paid:              req.Paid,
			ParticipantLimit:  req.ParticipantLimit,
			RequestModeration: moderation,
			Title:             req.Title,
		})
		if err != nil {
			log.Error("failed to create event", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("event created", slog.Int64("event_id", event.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
