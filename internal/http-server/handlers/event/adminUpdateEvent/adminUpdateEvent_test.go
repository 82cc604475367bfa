package adminUpdateEvent

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventflow/internal/domain"
	"eventflow/internal/http-server/handlers/event/adminUpdateEvent/mocks"
	"eventflow/internal/lib/logger/handlers/slogdiscard"
	"eventflow/internal/models"
)

func TestAdminUpdateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		eventID        string
		requestBody    string
		mockSetup      func(updater *mocks.AdminUpdater)
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "Publish pending event",
			eventID:     "42",
			requestBody: `{"state_action": "PUBLISH_EVENT"}`,
			mockSetup: func(updater *mocks.AdminUpdater) {
				action := models.ActionPublishEvent
				updater.On("UpdateByAdmin", mock.Anything, int64(42), models.EventPatch{StateAction: &action}).
					Return(&models.EventFull{ID: 42, State: models.StatePublished}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Invalid event id",
			eventID:        "abc",
			requestBody:    `{"state_action": "PUBLISH_EVENT"}`,
			mockSetup:      func(updater *mocks.AdminUpdater) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid event id",
		},
		{
			name:           "Unknown state action",
			eventID:        "42",
			requestBody:    `{"state_action": "MAKE_IT_SO"}`,
			mockSetup:      func(updater *mocks.AdminUpdater) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Publish rejected for published event",
			eventID:     "42",
			requestBody: `{"state_action": "PUBLISH_EVENT"}`,
			mockSetup: func(updater *mocks.AdminUpdater) {
				action := models.ActionPublishEvent
				updater.On("UpdateByAdmin", mock.Anything, int64(42), models.EventPatch{StateAction: &action}).
					Return(nil, domain.Conflict("only pending events can be published"))
			},
			expectedStatus: http.StatusConflict,
			expectedError:  "only pending events can be published",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockUpdater := mocks.NewAdminUpdater(t)
			tc.mockSetup(mockUpdater)

			handler := New(logger, mockUpdater)

			router := chi.NewRouter()
			router.Patch("/admin/events/{eventId}", handler)

			req, err := http.NewRequest(http.MethodPatch, "/admin/events/"+tc.eventID, bytes.NewBufferString(tc.requestBody))
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
