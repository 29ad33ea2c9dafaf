package domain

// Row maps a column name to the scalar value the driver returned for it.
type Row map[string]interface{}

// TabularResult is the outcome of running one query: the column order as
// emitted by the engine plus the rows in the order they were fetched.
// It is built once per execution and not mutated afterwards.
type TabularResult struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTabularResult creates a result for the given column order.
func NewTabularResult(columns []string) *TabularResult {
	return &TabularResult{
		Columns: columns,
		Rows:    []Row{},
	}
}

// RowCount returns the number of rows in the result.
func (t *TabularResult) RowCount() int {
	return len(t.Rows)
}

// ComparisonOutcome is the answer of the result comparator. Reason is
// always populated, also on the success path.
type ComparisonOutcome struct {
	Equal  bool
	Reason string
}
