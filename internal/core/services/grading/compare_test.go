package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

func result(columns []string, rows ...domain.Row) *domain.TabularResult {
	return &domain.TabularResult{Columns: columns, Rows: rows}
}

func TestCompareResults_ReorderedRowsAndCasedColumns(t *testing.T) {
	submitted := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "a"},
		domain.Row{"id": int64(2), "name": "b"},
	)
	reference := result([]string{"ID", "NAME"},
		domain.Row{"ID": int64(2), "NAME": "b"},
		domain.Row{"ID": int64(1), "NAME": "a"},
	)

	outcome := CompareResults(submitted, reference)
	assert.True(t, outcome.Equal)
	assert.NotEmpty(t, outcome.Reason)
}

func TestCompareResults_ColumnOrderIgnored(t *testing.T) {
	submitted := result([]string{"name", "id"},
		domain.Row{"name": "a", "id": int64(1)},
	)
	reference := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "a"},
	)

	assert.True(t, CompareResults(submitted, reference).Equal)
}

func TestCompareResults_RowCountMismatch(t *testing.T) {
	submitted := result([]string{"id"},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(2)},
		domain.Row{"id": int64(3)},
	)
	reference := result([]string{"id"},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(2)},
	)

	outcome := CompareResults(submitted, reference)
	assert.False(t, outcome.Equal)
	assert.Contains(t, outcome.Reason, "3")
	assert.Contains(t, outcome.Reason, "2")
}

func TestCompareResults_ColumnCountMismatch(t *testing.T) {
	submitted := result([]string{"id"}, domain.Row{"id": int64(1)})
	reference := result([]string{"id", "name"}, domain.Row{"id": int64(1), "name": "a"})

	outcome := CompareResults(submitted, reference)
	assert.False(t, outcome.Equal)
	assert.Contains(t, outcome.Reason, "column count")
	assert.Contains(t, outcome.Reason, "1")
	assert.Contains(t, outcome.Reason, "2")
}

func TestCompareResults_ColumnNameMismatch(t *testing.T) {
	submitted := result([]string{"id", "amt"},
		domain.Row{"id": int64(1), "amt": int64(10)},
	)
	reference := result([]string{"id", "amount"},
		domain.Row{"id": int64(1), "amount": int64(10)},
	)

	outcome := CompareResults(submitted, reference)
	assert.False(t, outcome.Equal)
	assert.Contains(t, outcome.Reason, "amount")
	assert.Contains(t, outcome.Reason, "amt")
}

func TestCompareResults_DifferingCellValue(t *testing.T) {
	submitted := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "a"},
	)
	reference := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "b"},
	)

	outcome := CompareResults(submitted, reference)
	assert.False(t, outcome.Equal)
	assert.Equal(t, "result values differ", outcome.Reason)
}

func TestCompareResults_EmptyResultsAreEqual(t *testing.T) {
	submitted := result([]string{"id", "name"})
	reference := result([]string{"ID", "Name"})

	assert.True(t, CompareResults(submitted, reference).Equal)
}

func TestCompareResults_DuplicateRowMultisets(t *testing.T) {
	submitted := result([]string{"id"},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(2)},
	)
	reference := result([]string{"id"},
		domain.Row{"id": int64(2)},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(1)},
	)

	assert.True(t, CompareResults(submitted, reference).Equal)

	// Same duplicate counts are required, not just the same value set.
	unbalanced := result([]string{"id"},
		domain.Row{"id": int64(1)},
		domain.Row{"id": int64(2)},
		domain.Row{"id": int64(2)},
	)
	assert.False(t, CompareResults(submitted, unbalanced).Equal)
}

func TestCompareResults_NumericWidening(t *testing.T) {
	submitted := result([]string{"total"}, domain.Row{"total": int64(42)})
	reference := result([]string{"total"}, domain.Row{"total": float64(42)})

	assert.True(t, CompareResults(submitted, reference).Equal)
}

func TestCompareResults_NullsAndTimes(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	submitted := result([]string{"at", "note"},
		domain.Row{"at": ts, "note": nil},
		domain.Row{"at": ts.Add(time.Hour), "note": "x"},
	)
	reference := result([]string{"at", "note"},
		domain.Row{"at": ts.Add(time.Hour), "note": "x"},
		domain.Row{"at": ts, "note": nil},
	)

	assert.True(t, CompareResults(submitted, reference).Equal)
}

func TestCompareResults_IncomparableTypesFailClosed(t *testing.T) {
	submitted := result([]string{"v"},
		domain.Row{"v": "text"},
		domain.Row{"v": int64(1)},
	)
	reference := result([]string{"v"},
		domain.Row{"v": int64(1)},
		domain.Row{"v": "text"},
	)

	outcome := CompareResults(submitted, reference)
	assert.False(t, outcome.Equal)
	assert.Contains(t, outcome.Reason, "comparison failed")
}

func TestCompareResults_EqualIsSymmetricAndIdempotent(t *testing.T) {
	a := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "a"},
		domain.Row{"id": int64(2), "name": "b"},
	)
	b := result([]string{"NAME", "ID"},
		domain.Row{"NAME": "b", "ID": int64(2)},
		domain.Row{"NAME": "a", "ID": int64(1)},
	)

	first := CompareResults(a, b)
	second := CompareResults(a, b)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Equal, CompareResults(b, a).Equal)

	mismatch := result([]string{"id", "name"},
		domain.Row{"id": int64(1), "name": "a"},
		domain.Row{"id": int64(9), "name": "b"},
	)
	assert.Equal(t, CompareResults(a, mismatch).Equal, CompareResults(mismatch, a).Equal)
}
