// Package service contains the table listing logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SebastienMelki/tablegate/internal/observability"
	"github.com/SebastienMelki/tablegate/internal/tables/internal/domain"
)

// TableStore defines the port for the backing store. This mirrors the
// top-level tables.TableStore interface to avoid import cycles.
type TableStore interface {
	ListTableNames(ctx context.Context) ([]string, error)
}

// ErrStoreUnavailable wraps any failure of the backing store.
var ErrStoreUnavailable = errors.New("table store unavailable")

// TableService lists the tables of the backing store.
type TableService struct {
	store   TableStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTableService creates a new TableService.
func NewTableService(store TableStore, metrics *observability.Metrics, logger *slog.Logger) *TableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableService{
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "table-service"),
	}
}

// ListTables returns every table identifier in the store.
func (s *TableService) ListTables(ctx context.Context) (*domain.TableList, error) {
	start := time.Now()
	names, err := s.store.ListTableNames(ctx)
	s.metrics.TableListLatency.Record(ctx, float64(time.Since(start).Milliseconds()))
	if err != nil {
		s.metrics.TableListErrors.Add(ctx, 1)
		s.logger.Error("failed to list tables", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.metrics.TablesListed.Record(ctx, int64(len(names)))
	s.logger.Debug("tables listed", "count", len(names))

	return domain.NewTableList(names), nil
}
