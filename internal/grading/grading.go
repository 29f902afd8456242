// Package grading scores test submissions and ranks results.
package grading

import (
	"context"
	"fmt"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"

	"github.com/shopspring/decimal"
)

// Store is the part of the record store grading needs.
type Store interface {
	GetTest(ctx context.Context, id int64) (models.Test, error)
	QueryQuestions(ctx context.Context, testID int64) ([]models.QuestionRecord, error)
	InsertResult(ctx context.Context, userID, testID int64, score, total int) (models.Result, error)
	QueryResults(ctx context.Context, testID int64) ([]models.Result, error)
}

// QuestionOutcome tells the taker how one question went.
type QuestionOutcome struct {
	QuestionID    int64  `json:"question_id"`
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

// Outcome is a graded and stored submission.
type Outcome struct {
	Result    models.Result     `json:"result"`
	Percent   decimal.Decimal   `json:"percent"`
	Questions []QuestionOutcome `json:"questions"`
}

// Grade scores answers, keyed by question id, against questions. A question
// counts only when the selected letter equals the stored answer exactly.
// Answers for unknown ids are ignored.
func Grade(questions []models.QuestionRecord, answers map[int64]string) (int, []QuestionOutcome) {
	score := 0
	outcomes := make([]QuestionOutcome, 0, len(questions))
	for _, q := range questions {
		selected := answers[q.ID]
		ok := selected != "" && selected == q.CorrectAnswer
		if ok {
			score++
		}
		outcomes = append(outcomes, QuestionOutcome{
			QuestionID:    q.ID,
			Selected:      selected,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       ok,
		})
	}
	return score, outcomes
}

// Percent returns score/total as a percentage rounded to two places.
func Percent(score, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(score)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(total)), 2)
}

// Grader grades submissions and stores their results.
type Grader struct {
	store  Store
	logger logging.Logger
}

// NewGrader returns a Grader.
func NewGrader(store Store, logger logging.Logger) *Grader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Grader{store: store, logger: logger.WithField(logging.FieldComponent, "grading")}
}

// Submit grades answers for testID on behalf of userID and stores the result.
// The store's not-found error is returned for an unknown test.
func (g *Grader) Submit(ctx context.Context, userID, testID int64, answers map[int64]string) (Outcome, error) {
	if _, err := g.store.GetTest(ctx, testID); err != nil {
		return Outcome{}, err
	}
	questions, err := g.store.QueryQuestions(ctx, testID)
	if err != nil {
		return Outcome{}, fmt.Errorf("load questions: %w", err)
	}

	score, outcomes := Grade(questions, answers)
	res, err := g.store.InsertResult(ctx, userID, testID, score, len(questions))
	if err != nil {
		return Outcome{}, fmt.Errorf("store result: %w", err)
	}

	g.logger.Info("Graded submission",
		logging.F(logging.FieldUserID, userID),
		logging.F(logging.FieldTestID, testID),
		logging.F("score", score),
		logging.F("total", len(questions)))
	return Outcome{Result: res, Percent: Percent(score, len(questions)), Questions: outcomes}, nil
}

// Leaderboard ranks the results of testID, best score first. Equal scores
// are ranked by submission time.
func (g *Grader) Leaderboard(ctx context.Context, testID int64) ([]models.LeaderboardEntry, error) {
	if _, err := g.store.GetTest(ctx, testID); err != nil {
		return nil, err
	}
	results, err := g.store.QueryResults(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(results))
	for i, r := range results {
		entries = append(entries, models.LeaderboardEntry{
			Rank:      i + 1,
			UserID:    r.UserID,
			Username:  r.Username,
			Score:     r.Score,
			Total:     r.Total,
			Percent:   Percent(r.Score, r.Total),
			CreatedAt: r.CreatedAt,
		})
	}
	return entries, nil
}
