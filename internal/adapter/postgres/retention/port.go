package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
)

var _ secondary.RetentionPort = (*retentionRepo)(nil)

type retentionRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

// New creates a new PostgreSQL retention repository
func New(db *sqlx.DB, logger primary.Logger) secondary.RetentionPort {
	return &retentionRepo{db: db, logger: logger}
}

// DropExpectedTablesBefore drops grading.expected_* tables whose name
// embeds a date before the cutoff. Table names follow
// expected_YYYY-MM-DD_<suffix>, produced by daily generation runs.
func (r *retentionRepo) DropExpectedTablesBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'grading' AND table_name LIKE 'expected_%'
	`
	var tables []string
	if err := r.db.SelectContext(ctx, &tables, query); err != nil {
		return 0, fmt.Errorf("failed to list expected tables: %w", err)
	}

	dropped := 0
	for _, table := range tables {
		tableDate, ok := parseExpectedTableDate(table)
		if !ok || !tableDate.Before(cutoff) {
			continue
		}
		stmt := fmt.Sprintf(`DROP TABLE IF EXISTS grading.%q`, table)
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			r.logger.Error("Failed to drop expected table", "table", table, "error", err)
			continue
		}
		r.logger.Info("Dropped stale expected table", "table", table)
		dropped++
	}
	return dropped, nil
}

// parseExpectedTableDate extracts the date from expected_YYYY-MM-DD_*.
func parseExpectedTableDate(table string) (time.Time, bool) {
	const prefix = "expected_"
	if len(table) < len(prefix)+10 {
		return time.Time{}, false
	}
	dateStr := table[len(prefix) : len(prefix)+10]
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
