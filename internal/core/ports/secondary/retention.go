package secondary

import (
	"context"
	"time"
)

// RetentionPort cleans up the database side of daily generation:
// materialized expected_* tables left behind by earlier problem sets.
type RetentionPort interface {
	// DropExpectedTablesBefore drops expected_* tables whose embedded
	// date precedes the cutoff and reports how many were dropped.
	DropExpectedTablesBefore(ctx context.Context, cutoff time.Time) (int, error)
}
