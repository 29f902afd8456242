package store

import (
	"context"
	"database/sql"
	"fmt"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
)

// BulkInsertQuestions writes records for testID in a single transaction.
// Either every record is stored or none is; failures come back as
// *extractionerror.StoreError.
func (s *Store) BulkInsertQuestions(ctx context.Context, testID int64, records []models.QuestionRecord) error {
	if len(records) == 0 {
		return nil
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO questions
			  (test_id, position, ordinal, question_text, option_a, option_b, option_c, option_d, correct_answer)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for i, r := range records {
			pos := r.Position
			if pos == 0 {
				pos = i + 1
			}
			if _, err := stmt.ExecContext(ctx, testID, pos, r.Ordinal, r.QuestionText,
				r.OptionA, r.OptionB, r.OptionC, r.OptionD, r.CorrectAnswer); err != nil {
				return fmt.Errorf("question %d: %w", r.Ordinal, err)
			}
		}
		return nil
	})
	if err != nil {
		return &extractionerror.StoreError{Op: "bulk_insert_questions", TestID: testID, Err: err}
	}

	s.logger.Debug("Stored questions",
		logging.F(logging.FieldTestID, testID),
		logging.F(logging.FieldCount, len(records)))
	return nil
}

// QueryQuestions returns the questions of testID in document order, answers
// included.
func (s *Store) QueryQuestions(ctx context.Context, testID int64) ([]models.QuestionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, test_id, position, ordinal, question_text,
		       option_a, option_b, option_c, option_d, correct_answer
		FROM questions WHERE test_id = $1
		ORDER BY position, id`, testID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.QuestionRecord{}
	for rows.Next() {
		var q models.QuestionRecord
		if err := rows.Scan(&q.ID, &q.TestID, &q.Position, &q.Ordinal, &q.QuestionText,
			&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("query questions: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
