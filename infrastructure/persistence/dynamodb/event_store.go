package dynamodb

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"storefront-backend/domain/interaction"
	apperrors "storefront-backend/pkg/errors"
)

// EventStore implements the event log on DynamoDB.
//
// Key layout:
//
//	PK: USEREVENTS#<user_id>
//	SK: EVENT#<timestamp_nanos, zero-padded>#<seq, zero-padded>
//
// Both components are zero-padded so lexicographic SK order equals numeric
// order; the per-process seq keeps two appends on the same nanosecond tick
// in append order.
type EventStore struct {
	client    *dynamodb.Client
	tableName string
	timeout   time.Duration
	seq       atomic.Int64
}

// EventRecord represents how events are stored in DynamoDB
type EventRecord struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	EventID   string `dynamodbav:"EventID"`
	UserID    string `dynamodbav:"UserID"`
	EventType string `dynamodbav:"EventType"`
	Content   string `dynamodbav:"Content"`
	Timestamp string `dynamodbav:"Timestamp"`
	Seq       int64  `dynamodbav:"Seq"`
}

// NewEventStore creates a new DynamoDB event store
func NewEventStore(client *dynamodb.Client, tableName string, timeout time.Duration) *EventStore {
	return &EventStore{
		client:    client,
		tableName: tableName,
		timeout:   timeout,
	}
}

// Append records a single interaction and returns its event id
func (s *EventStore) Append(ctx context.Context, userID string, eventType interaction.EventType, content string) (string, error) {
	event := interaction.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventType: eventType,
		Content:   content,
	}
	if err := event.Validate(); err != nil {
		return "", apperrors.NewInvalidArgumentError(err.Error())
	}

	now := time.Now().UTC()
	seq := s.seq.Add(1)

	record := EventRecord{
		PK:        userPK(userID),
		SK:        fmt.Sprintf("EVENT#%019d#%012d", now.UnixNano(), seq),
		EventID:   event.ID,
		UserID:    userID,
		EventType: string(eventType),
		Content:   content,
		Timestamp: now.Format(time.RFC3339Nano),
		Seq:       seq,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return "", apperrors.NewStoreUnavailableError("append", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// A single PutItem is atomic: the event is fully written or not at all.
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(SK)"),
	})
	if err != nil {
		return "", apperrors.NewStoreUnavailableError("append", err)
	}

	return event.ID, nil
}

// Recent returns the user's most recent events, newest first
func (s *EventStore) Recent(ctx context.Context, userID string, limit int) ([]interaction.Event, error) {
	if limit <= 0 {
		return nil, apperrors.NewInvalidArgumentError("limit must be a positive integer")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: userPK(userID)},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(int32(limit)),
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("recent", err)
	}

	events := make([]interaction.Event, 0, len(result.Items))
	for _, item := range result.Items {
		var record EventRecord
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, apperrors.NewStoreUnavailableError("recent", err)
		}

		event, err := recordToEvent(record)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError("recent", err)
		}
		events = append(events, event)
	}

	return events, nil
}

// Close releases the backend connection
func (s *EventStore) Close() error {
	// The SDK client holds no long-lived connections of its own
	return nil
}

func userPK(userID string) string {
	return fmt.Sprintf("USEREVENTS#%s", userID)
}

func recordToEvent(record EventRecord) (interaction.Event, error) {
	ts, err := time.Parse(time.RFC3339Nano, record.Timestamp)
	if err != nil {
		return interaction.Event{}, fmt.Errorf("parse event timestamp: %w", err)
	}

	return interaction.Event{
		ID:        record.EventID,
		UserID:    record.UserID,
		EventType: interaction.EventType(record.EventType),
		Content:   record.Content,
		Timestamp: ts,
		Seq:       record.Seq,
	}, nil
}
