package getEvent

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventflow/internal/domain"
	"eventflow/internal/http-server/handlers/event/getEvent/mocks"
	"eventflow/internal/lib/logger/handlers/slogdiscard"
	"eventflow/internal/models"
)

func TestGetEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(getter *mocks.PublicGetter)
		expectedStatus int
		expectedError  string
	}{
		{
			name:    "Success",
			eventID: "42",
			mockSetup: func(getter *mocks.PublicGetter) {
				getter.On("GetPublic", mock.Anything, int64(42), "/events/42", mock.AnythingOfType("string")).
					Return(&models.EventFull{ID: 42, State: models.StatePublished}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid event id",
			eventID:        "abc",
			mockSetup:      func(getter *mocks.PublicGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid event id",
		},
		{
			name:    "Unpublished event is not found",
			eventID: "42",
			mockSetup: func(getter *mocks.PublicGetter) {
				getter.On("GetPublic", mock.Anything, int64(42), "/events/42", mock.AnythingOfType("string")).
					Return(nil, domain.NotFound("event 42"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewPublicGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			router := chi.NewRouter()
			router.Get("/events/{id}", handler)

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.expectedError != "" {
				assert.Contains(t, rr.Body.String(), tc.expectedError)
			}
		})
	}
}
