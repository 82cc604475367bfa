package categoryEvents

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventflow/internal/lib/api/response"
	"eventflow/internal/lib/logger/sl"
)

// ExistsResponse answers the category service's pre-deletion check.
type ExistsResponse struct {
	response.Response
	Exists bool `json:"exists"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CategoryChecker
type CategoryChecker interface {
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
}

func New(log *slog.Logger, checker CategoryChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.categoryEvents.New"

		log := log.With(slog.String("op", op))

		categoryID, err := strconv.ParseInt(chi.URLParam(r, "catId"), 10, 64)
		if err != nil {
			log.Error("invalid category id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid category id"))

			return
		}

		exists, err := checker.ExistsByCategory(r.Context(), categoryID)
		if err != nil {
			log.Error("failed to check category", sl.Err(err))
			render.Status(r, response.StatusCode(err))
			render.JSON(w, r, response.Error(err.Error()))

			return
		}

		log.Info("category checked",
			slog.Int64("category_id", categoryID),
			slog.Bool("exists", exists),
		)

		render.JSON(w, r, ExistsResponse{
			Response: response.OK(),
			Exists:   exists,
		})
	}
}
