// Package tables provides the resource handler behind GET /dynamodb: it
// lists the backing store's tables and shapes the result as a proxy
// integration response.
package tables

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/SebastienMelki/tablegate/internal/observability"
	"github.com/SebastienMelki/tablegate/internal/tables/internal/domain"
	"github.com/SebastienMelki/tablegate/internal/tables/internal/repo"
	"github.com/SebastienMelki/tablegate/internal/tables/internal/service"
)

// TableStore defines the port for the backing store.
type TableStore interface {
	// ListTableNames returns every table identifier in the store.
	ListTableNames(ctx context.Context) ([]string, error)
}

// TableList mirrors the store's list response.
type TableList = domain.TableList

// ErrStoreUnavailable wraps any failure of the backing store.
var ErrStoreUnavailable = service.ErrStoreUnavailable

// Module is the tables module facade.
type Module struct {
	service *service.TableService
	logger  *slog.Logger
}

// New creates a new tables Module backed by DynamoDB.
func New(client dynamodb.ListTablesAPIClient, metrics *observability.Metrics, logger *slog.Logger) *Module {
	return NewWithStore(repo.NewDynamoDBRepository(client), metrics, logger)
}

// NewWithStore creates a new tables Module over an arbitrary store.
func NewWithStore(store TableStore, metrics *observability.Metrics, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}

	return &Module{
		service: service.NewTableService(store, metrics, logger),
		logger:  logger.With("component", "tables-module"),
	}
}

// ListTables returns every table identifier in the store.
func (m *Module) ListTables(ctx context.Context) (*TableList, error) {
	return m.service.ListTables(ctx)
}
