package persistence

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"storefront-backend/application/ports"
	"storefront-backend/infrastructure/config"
	"storefront-backend/infrastructure/persistence/dynamodb"
	"storefront-backend/infrastructure/persistence/memory"
	"storefront-backend/infrastructure/persistence/postgres"
)

// NewEventStore selects the event store backend from the DSN.
//   - Empty DSN: in-memory (local development and tests)
//   - postgres:// or postgresql://: PostgreSQL
//   - dynamodb://<table>: DynamoDB
//
// The services are oblivious to which backend was chosen; the deployment
// decides once, at startup.
func NewEventStore(ctx context.Context, cfg *config.Config) (ports.EventStore, error) {
	dsn := cfg.EventStoreDSN

	switch {
	case dsn == "":
		return memory.NewEventStore(), nil

	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		store, err := postgres.NewEventStore(dsn, cfg.StoreTimeout)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return store, nil

	case strings.HasPrefix(dsn, "dynamodb://"):
		tableName := strings.TrimPrefix(dsn, "dynamodb://")
		if tableName == "" {
			return nil, fmt.Errorf("dynamodb DSN is missing a table name")
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := awsdynamodb.NewFromConfig(awsCfg)
		return dynamodb.NewEventStore(client, tableName, cfg.StoreTimeout), nil

	default:
		return nil, fmt.Errorf("unsupported event store DSN: %s", dsn)
	}
}
