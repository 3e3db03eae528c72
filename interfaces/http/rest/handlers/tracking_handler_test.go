package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-backend/application/services"
	"storefront-backend/domain/interaction"
	"storefront-backend/pkg/auth"
	apperrors "storefront-backend/pkg/errors"
	"storefront-backend/tests/mocks"
)

func storeUnavailable() error {
	return apperrors.NewStoreUnavailableError("append", errors.New("connection refused"))
}

func newTrackingFixture(store *mocks.MockEventStore) *TrackingHandler {
	logger := zap.NewNop()
	return NewTrackingHandler(services.NewTrackingService(store, logger), logger)
}

func authenticatedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := auth.SetUserInContext(context.Background(), &auth.UserContext{UserID: "user-1"})
	return req.WithContext(ctx)
}

func TestRecordSearch_Accepted(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeSearch, "wireless mouse").
		Return("evt-1", nil)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/search", `{"query":"wireless mouse"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.RecordSearch(rec, req)

	// Assert
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			EventID string `json:"event_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "evt-1", resp.Data.EventID)
	mockStore.AssertExpectations(t)
}

func TestRecordSearch_MissingQueryIsBadRequest(t *testing.T) {
	mockStore := new(mocks.MockEventStore)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/search", `{}`)
	rec := httptest.NewRecorder()

	handler.RecordSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordSearch_MalformedBodyIsBadRequest(t *testing.T) {
	mockStore := new(mocks.MockEventStore)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/search", `{"query": "unterminated`)
	rec := httptest.NewRecorder()

	handler.RecordSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordSearch_UnknownFieldsAreRejected(t *testing.T) {
	mockStore := new(mocks.MockEventStore)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/search", `{"query":"tv","color":"red"}`)
	rec := httptest.NewRecorder()

	handler.RecordSearch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecordSearch_NoIdentityIsUnauthenticated(t *testing.T) {
	mockStore := new(mocks.MockEventStore)
	handler := newTrackingFixture(mockStore)

	// Request without the middleware having run
	req := httptest.NewRequest(http.MethodPost, "/api/v1/track/search", strings.NewReader(`{"query":"tv"}`))
	rec := httptest.NewRecorder()

	handler.RecordSearch(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordClick_Accepted(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeClick, "Milk Dairy").
		Return("evt-2", nil)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/click",
		`{"product_name":"Milk","category":"Dairy"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.RecordClick(rec, req)

	// Assert
	assert.Equal(t, http.StatusAccepted, rec.Code)
	mockStore.AssertExpectations(t)
}

func TestRecordClick_MissingProductNameIsBadRequest(t *testing.T) {
	mockStore := new(mocks.MockEventStore)
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/click", `{"category":"Dairy"}`)
	rec := httptest.NewRecorder()

	handler.RecordClick(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordSearch_StoreFailureIsServiceUnavailable(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeSearch, "tv").
		Return("", storeUnavailable())
	handler := newTrackingFixture(mockStore)

	req := authenticatedRequest(http.MethodPost, "/api/v1/track/search", `{"query":"tv"}`)
	rec := httptest.NewRecorder()

	// Act
	handler.RecordSearch(rec, req)

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "STORE_UNAVAILABLE")
}
