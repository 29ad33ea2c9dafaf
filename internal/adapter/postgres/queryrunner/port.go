// package queryrunner executes learner SQL against the practice database
package queryrunner

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/KnellBalm/Offline-Lab/internal/config"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

var _ secondary.QueryRunner = (*QueryRunner)(nil)

var readOnlyKeywords = map[string]struct{}{
	"SELECT":  {},
	"WITH":    {},
	"SHOW":    {},
	"EXPLAIN": {},
}

// QueryRunner implements the QueryRunner interface with PostgreSQL.
// Every call runs inside its own read-only transaction with a
// statement timeout, so a hung or mutating query can never leak out of
// one grading request.
type QueryRunner struct {
	db     *sqlx.DB
	cfg    *config.GradingConfig
	logger primary.Logger
}

// NewQueryRunner creates a new PostgreSQL query runner
func NewQueryRunner(db *sqlx.DB, cfg *config.GradingConfig, logger primary.Logger) *QueryRunner {
	return &QueryRunner{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// RunQuery executes one read-only statement and collects its result
// set, preserving the engine's column and row order. Rows beyond the
// configured cap are dropped.
func (r *QueryRunner) RunQuery(ctx context.Context, sqlText string) (*domain.TabularResult, error) {
	stmt, err := sanitizeStatement(sqlText)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.StatementTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin read-only transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryxContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := domain.NewTabularResult(columns)
	for rows.Next() {
		if r.cfg.MaxRows > 0 && len(result.Rows) >= r.cfg.MaxRows {
			r.logger.Warn("Result truncated at row limit", "limit", r.cfg.MaxRows)
			break
		}
		row := make(domain.Row, len(columns))
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// sanitizeStatement trims the statement, drops a trailing semicolon and
// rejects anything that is not a single read-only query.
func sanitizeStatement(sqlText string) (string, error) {
	stmt := strings.TrimSpace(sqlText)
	stmt = strings.TrimRight(stmt, ";\t\n ")
	if stmt == "" {
		return "", fmt.Errorf("empty SQL statement")
	}
	if strings.Contains(stmt, ";") {
		return "", fmt.Errorf("multiple SQL statements are not allowed")
	}

	fields := strings.Fields(stmt)
	keyword := strings.ToUpper(fields[0])
	if _, ok := readOnlyKeywords[keyword]; !ok {
		return "", fmt.Errorf("statement %q is not allowed: only read-only queries can be executed", keyword)
	}

	return stmt, nil
}
