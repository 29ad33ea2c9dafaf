package secondary

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

// QueryRunner executes a read-only SQL statement against the practice
// database and returns its result set. Implementations must reject
// mutating statements before execution, keep the engine's column and
// row order, and enforce their own statement timeout. A timeout is
// reported as an ordinary execution error.
type QueryRunner interface {
	RunQuery(ctx context.Context, sql string) (*domain.TabularResult, error)
}
