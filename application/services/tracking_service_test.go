package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"storefront-backend/domain/interaction"
	apperrors "storefront-backend/pkg/errors"
	"storefront-backend/tests/mocks"
)

func TestRecordSearch_AppendsSearchEvent(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeSearch, "wireless mouse").
		Return("evt-123", nil)

	service := NewTrackingService(mockStore, zap.NewNop())

	// Act
	eventID, err := service.RecordSearch(context.Background(), "user-1", "wireless mouse")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "evt-123", eventID)
	mockStore.AssertExpectations(t)
}

func TestRecordSearch_EmptyQueryIsRejected(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	service := NewTrackingService(mockStore, zap.NewNop())

	// Act
	_, err := service.RecordSearch(context.Background(), "user-1", "")

	// Assert
	assert.True(t, apperrors.IsInvalidArgument(err))
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordSearch_StoreErrorPropagates(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	storeErr := apperrors.NewStoreUnavailableError("append", errors.New("timeout"))
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeSearch, "laptop").
		Return("", storeErr)

	service := NewTrackingService(mockStore, zap.NewNop())

	// Act
	_, err := service.RecordSearch(context.Background(), "user-1", "laptop")

	// Assert
	assert.True(t, apperrors.IsStoreUnavailable(err))
}

func TestRecordClick_ContentJoinsNonEmptyFields(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeClick, "Milk Dairy").
		Return("evt-456", nil)

	service := NewTrackingService(mockStore, zap.NewNop())

	// Act: brand and supplier absent, so only name and category appear
	eventID, err := service.RecordClick(context.Background(), "user-1", interaction.ClickedProduct{
		ProductName: "Milk",
		Category:    "Dairy",
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "evt-456", eventID)
	mockStore.AssertExpectations(t)
}

func TestRecordClick_AllFieldsJoinInOrder(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	mockStore.On("Append", mock.Anything, "user-1", interaction.EventTypeClick,
		"Chai Tea Beverages Exotic Liquids").Return("evt-789", nil)

	service := NewTrackingService(mockStore, zap.NewNop())

	// Act
	_, err := service.RecordClick(context.Background(), "user-1", interaction.ClickedProduct{
		ProductName: "Chai Tea",
		Category:    "Beverages",
		Supplier:    "Exotic Liquids",
	})

	// Assert
	assert.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestRecordClick_EmptyProductIsRejected(t *testing.T) {
	// Arrange
	mockStore := new(mocks.MockEventStore)
	service := NewTrackingService(mockStore, zap.NewNop())

	// Act
	_, err := service.RecordClick(context.Background(), "user-1", interaction.ClickedProduct{})

	// Assert
	assert.True(t, apperrors.IsInvalidArgument(err))
	mockStore.AssertNotCalled(t, "Append", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
