package queryrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStatement_TrimsTrailingSemicolon(t *testing.T) {
	stmt, err := sanitizeStatement("  SELECT * FROM orders;\n")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM orders", stmt)
}

func TestSanitizeStatement_AllowsCTEAndExplain(t *testing.T) {
	for _, q := range []string{
		"WITH t AS (SELECT 1) SELECT * FROM t",
		"explain SELECT 1",
		"show search_path",
	} {
		_, err := sanitizeStatement(q)
		assert.NoError(t, err, q)
	}
}

func TestSanitizeStatement_RejectsMutations(t *testing.T) {
	for _, q := range []string{
		"DELETE FROM orders",
		"UPDATE orders SET total = 0",
		"INSERT INTO orders VALUES (1)",
		"DROP TABLE orders",
		"TRUNCATE orders",
	} {
		_, err := sanitizeStatement(q)
		assert.Error(t, err, q)
	}
}

func TestSanitizeStatement_RejectsMultipleStatements(t *testing.T) {
	_, err := sanitizeStatement("SELECT 1; DELETE FROM orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple")
}

func TestSanitizeStatement_RejectsEmpty(t *testing.T) {
	_, err := sanitizeStatement(" ;; ")
	assert.Error(t, err)
}
