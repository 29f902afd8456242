package grading

import (
	"context"
	"path/filepath"
	"testing"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrade(t *testing.T) {
	questions := []models.QuestionRecord{
		{ID: 1, CorrectAnswer: "A"},
		{ID: 2, CorrectAnswer: "B"},
		{ID: 3, CorrectAnswer: "C"},
	}

	tests := []struct {
		name    string
		answers map[int64]string
		want    int
	}{
		{name: "all correct", answers: map[int64]string{1: "A", 2: "B", 3: "C"}, want: 3},
		{name: "none answered", answers: nil, want: 0},
		{name: "lowercase does not count", answers: map[int64]string{1: "a", 2: "B"}, want: 1},
		{name: "unknown ids ignored", answers: map[int64]string{99: "A", 3: "C"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, outcomes := Grade(questions, tt.answers)
			assert.Equal(t, tt.want, score)
			require.Len(t, outcomes, 3)
			correct := 0
			for _, o := range outcomes {
				if o.Correct {
					correct++
				}
			}
			assert.Equal(t, tt.want, correct)
		})
	}
}

func TestPercent(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(Percent(0, 0)))
	assert.Equal(t, "66.67", Percent(2, 3).String())
	assert.Equal(t, "100", Percent(5, 5).String())
	assert.Equal(t, "12.5", Percent(1, 8).String())
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "grading.db") + "?_pragma=foreign_keys(1)"
	s, err := store.Open(context.Background(), store.DriverSQLite, dsn, logging.NewMockLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSubmitAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	g := NewGrader(st, logging.NewMockLogger())

	testID, err := st.InsertTest(ctx, "Arithmetic", "math")
	require.NoError(t, err)
	require.NoError(t, st.BulkInsertQuestions(ctx, testID, []models.QuestionRecord{
		{Position: 1, QuestionText: "2+2", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: "B"},
		{Position: 2, QuestionText: "3*3", OptionA: "6", OptionB: "8", OptionC: "9", OptionD: "12", CorrectAnswer: "C"},
	}))
	questions, err := st.QueryQuestions(ctx, testID)
	require.NoError(t, err)

	ann, err := st.CreateUser(ctx, "ann", "", "h", "")
	require.NoError(t, err)
	ben, err := st.CreateUser(ctx, "ben", "", "h", "")
	require.NoError(t, err)

	out, err := g.Submit(ctx, ann.ID, testID, map[int64]string{questions[0].ID: "B", questions[1].ID: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Result.Score)
	assert.Equal(t, 2, out.Result.Total)
	assert.Equal(t, "50", out.Percent.String())
	assert.True(t, out.Questions[0].Correct)
	assert.False(t, out.Questions[1].Correct)
	assert.Equal(t, "C", out.Questions[1].CorrectAnswer)

	_, err = g.Submit(ctx, ben.ID, testID, map[int64]string{questions[0].ID: "B", questions[1].ID: "C"})
	require.NoError(t, err)

	board, err := g.Leaderboard(ctx, testID)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "ben", board[0].Username)
	assert.Equal(t, "100", board[0].Percent.String())
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, "ann", board[1].Username)
}

func TestSubmit_UnknownTest(t *testing.T) {
	st := newStore(t)
	g := NewGrader(st, nil)

	_, err := g.Submit(context.Background(), 1, 404, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = g.Leaderboard(context.Background(), 404)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestLeaderboard_Empty(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	id, err := st.InsertTest(ctx, "T", "")
	require.NoError(t, err)

	board, err := NewGrader(st, nil).Leaderboard(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, board)
	assert.NotNil(t, board)
}
