package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

const fencedPayload = "```json\n" +
	`[{"problem_id":"p1","title":"Orders per day","difficulty":"easy",` +
	`"topic":"aggregation","question":"Count orders per day.",` +
	`"answer_sql":"SELECT order_date, COUNT(*) FROM orders GROUP BY order_date"}]` +
	"\n```"

func TestDecodeProblems_StripsCodeFence(t *testing.T) {
	problems, err := decodeProblems(fencedPayload)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "p1", problems[0].ProblemID)
	assert.Equal(t, domain.DifficultyEasy, problems[0].Difficulty)
}

func TestDecodeProblems_PlainJSON(t *testing.T) {
	problems, err := decodeProblems(`[{"problem_id":"x","question":"q","answer_sql":"SELECT 1"}]`)
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "SELECT 1", problems[0].AnswerSQL)
}

func TestDecodeProblems_RejectsProse(t *testing.T) {
	_, err := decodeProblems("Sure! Here are your problems.")
	assert.Error(t, err)
}

func TestStripCodeFence_BareFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```\n[1]\n```"))
}
