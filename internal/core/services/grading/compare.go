package grading

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

const correctFeedback = "Correct answer! 🎉"

// CompareResults decides whether a submitted result set is equivalent
// to the reference result set. The checks run in a fixed order and the
// first failing one determines the message: column count, row count,
// column-name set (case-insensitive), then cell values on both tables
// normalized to lower-cased, alphabetically ordered columns with rows
// sorted by their full value tuple. Row order and column order never
// matter; values must match exactly.
//
// The function is pure and never fails: an incomparable table (mixed
// types within a column) yields Equal=false with a diagnostic reason.
func CompareResults(submitted, reference *domain.TabularResult) domain.ComparisonOutcome {
	if len(submitted.Columns) != len(reference.Columns) {
		return domain.ComparisonOutcome{
			Equal: false,
			Reason: fmt.Sprintf("column count mismatch (submitted: %d, expected: %d)",
				len(submitted.Columns), len(reference.Columns)),
		}
	}

	if len(submitted.Rows) != len(reference.Rows) {
		return domain.ComparisonOutcome{
			Equal: false,
			Reason: fmt.Sprintf("row count mismatch (submitted: %d, expected: %d)",
				len(submitted.Rows), len(reference.Rows)),
		}
	}

	subCols := lowerColumnSet(submitted.Columns)
	refCols := lowerColumnSet(reference.Columns)
	if missing, extra := diffColumnSets(subCols, refCols); len(missing) > 0 || len(extra) > 0 {
		reason := "column names do not match."
		if len(missing) > 0 {
			reason += fmt.Sprintf(" missing: [%s]", strings.Join(missing, ", "))
		}
		if len(extra) > 0 {
			reason += fmt.Sprintf(" extra: [%s]", strings.Join(extra, ", "))
		}
		return domain.ComparisonOutcome{Equal: false, Reason: reason}
	}

	subNorm, err := normalizeTable(submitted)
	if err != nil {
		return domain.ComparisonOutcome{Equal: false, Reason: fmt.Sprintf("comparison failed: %v", err)}
	}
	refNorm, err := normalizeTable(reference)
	if err != nil {
		return domain.ComparisonOutcome{Equal: false, Reason: fmt.Sprintf("comparison failed: %v", err)}
	}

	for i := range subNorm {
		for j := range subNorm[i] {
			cmp, err := compareCells(subNorm[i][j], refNorm[i][j])
			if err != nil {
				return domain.ComparisonOutcome{Equal: false, Reason: fmt.Sprintf("comparison failed: %v", err)}
			}
			if cmp != 0 {
				return domain.ComparisonOutcome{Equal: false, Reason: "result values differ"}
			}
		}
	}

	return domain.ComparisonOutcome{Equal: true, Reason: correctFeedback}
}

func lowerColumnSet(columns []string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[strings.ToLower(c)] = struct{}{}
	}
	return set
}

// diffColumnSets returns reference columns absent from the submission
// and submission columns absent from the reference, both sorted.
func diffColumnSets(sub, ref map[string]struct{}) (missing, extra []string) {
	for c := range ref {
		if _, ok := sub[c]; !ok {
			missing = append(missing, c)
		}
	}
	for c := range sub {
		if _, ok := ref[c]; !ok {
			extra = append(extra, c)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}

// normalizeTable projects a result onto lower-cased column names in
// alphabetical order and sorts the rows by their full value tuple, so
// that two equivalent results line up cell by cell.
func normalizeTable(t *domain.TabularResult) ([][]interface{}, error) {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, strings.ToLower(c))
	}
	sort.Strings(cols)

	rows := make([][]interface{}, 0, len(t.Rows))
	for _, r := range t.Rows {
		lowered := make(map[string]interface{}, len(r))
		for k, v := range r {
			lowered[strings.ToLower(k)] = normalizeCell(v)
		}
		tuple := make([]interface{}, len(cols))
		for i, c := range cols {
			tuple[i] = lowered[c]
		}
		rows = append(rows, tuple)
	}

	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		for k := range cols {
			cmp, err := compareCells(rows[i][k], rows[j][k])
			if err != nil {
				if sortErr == nil {
					sortErr = err
				}
				return false
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return rows, nil
}

// normalizeCell widens driver scalars so equivalent values compare
// equal: every integer and float becomes float64, byte slices become
// strings.
func normalizeCell(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

// compareCells orders two normalized cell values. NULL sorts before
// everything else. Values of different kinds within a column cannot be
// ordered and surface as an error, which the caller converts into a
// fail-closed outcome.
func compareCells(a, b interface{}) (int, error) {
	if a == nil && b == nil {
		return 0, nil
	}
	if a == nil {
		return -1, nil
	}
	if b == nil {
		return 1, nil
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0, incomparable(a, b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		}
		return 0, nil
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, incomparable(a, b)
		}
		return strings.Compare(av, bv), nil
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, incomparable(a, b)
		}
		if av == bv {
			return 0, nil
		}
		if !av {
			return -1, nil
		}
		return 1, nil
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, incomparable(a, b)
		}
		switch {
		case av.Before(bv):
			return -1, nil
		case av.After(bv):
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", a)
	}
}

func incomparable(a, b interface{}) error {
	return fmt.Errorf("incomparable values of type %T and %T", a, b)
}
