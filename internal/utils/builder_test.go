package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSelect(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Select("problem_id", "is_correct").
		From("submissions").
		Where("user_name = ?", "learner01").
		And("category = ?", "pa").
		OrderBy("submitted_at", false).
		Limit(20).
		Build()

	assert.Equal(t,
		"SELECT problem_id, is_correct FROM public.submissions"+
			" WHERE user_name = ? AND category = ?"+
			" ORDER BY submitted_at DESC LIMIT 20",
		query)
	assert.Equal(t, []interface{}{"learner01", "pa"}, args)
}

func TestBuildSelectWithoutSchema(t *testing.T) {
	query, _ := NewQueryBuilder("").Select("id").From("users").Build()
	assert.Equal(t, "SELECT id FROM users", query)
}

func TestBuildInsert(t *testing.T) {
	query, args := NewQueryBuilder("public").
		Insert("problem_id", "sql_text").
		Into("submissions").
		Values("p1", "SELECT 1").
		Build()

	assert.Equal(t, "INSERT INTO public.submissions (problem_id, sql_text) VALUES (?, ?)", query)
	assert.Len(t, args, 2)
}
