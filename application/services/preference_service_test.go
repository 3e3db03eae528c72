package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"storefront-backend/domain/interaction"
	"storefront-backend/tests/mocks"
)

func TestPreferenceText_JoinsRecentEventsNewestFirst(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	now := time.Now()
	// Recent returns events newest first; the profile preserves that order.
	mockStore.On("Recent", mock.Anything, "user-1", 10).Return([]interaction.Event{
		{ID: "e3", UserID: "user-1", EventType: interaction.EventTypeClick, Content: "wireless mouse", Timestamp: now, Seq: 3},
		{ID: "e2", UserID: "user-1", EventType: interaction.EventTypeSearch, Content: "mouse pad", Timestamp: now.Add(-time.Minute), Seq: 2},
		{ID: "e1", UserID: "user-1", EventType: interaction.EventTypeSearch, Content: "mouse", Timestamp: now.Add(-2 * time.Minute), Seq: 1},
	}, nil)

	service := NewPreferenceService(mockStore, 10, zap.NewNop())

	// Act
	profile, err := service.PreferenceText(context.Background(), "user-1", 0)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "wireless mouse mouse pad mouse", profile)
	mockStore.AssertExpectations(t)
}

func TestPreferenceText_EmptyHistoryYieldsEmptyString(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Recent", mock.Anything, "new-user", 10).Return([]interaction.Event{}, nil)

	service := NewPreferenceService(mockStore, 10, zap.NewNop())

	// Act
	profile, err := service.PreferenceText(context.Background(), "new-user", 0)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "", profile)
}

func TestPreferenceText_ExplicitLimitOverridesDefault(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Recent", mock.Anything, "user-1", 3).Return([]interaction.Event{
		{Content: "laptop"},
	}, nil)

	service := NewPreferenceService(mockStore, 10, zap.NewNop())

	// Act
	profile, err := service.PreferenceText(context.Background(), "user-1", 3)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "laptop", profile)
	mockStore.AssertExpectations(t)
}

func TestPreferenceText_StoreErrorPropagates(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	storeErr := errors.New("connection refused")
	mockStore.On("Recent", mock.Anything, "user-1", 10).Return(nil, storeErr)

	service := NewPreferenceService(mockStore, 10, zap.NewNop())

	// Act
	profile, err := service.PreferenceText(context.Background(), "user-1", 0)

	// Assert
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, "", profile)
}
