package store

import (
	"context"
	"fmt"
	"time"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
)

// InsertResult records one graded submission.
func (s *Store) InsertResult(ctx context.Context, userID, testID int64, score, total int) (models.Result, error) {
	now := s.now()

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO results (user_id, test_id, score, total, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userID, testID, score, total, now.UnixMilli()).Scan(&id)
	if err != nil {
		return models.Result{}, fmt.Errorf("insert result: %w", err)
	}

	s.logger.Debug("Stored result",
		logging.F(logging.FieldTestID, testID),
		logging.F(logging.FieldUserID, userID))
	return models.Result{
		ID:        id,
		UserID:    userID,
		TestID:    testID,
		Score:     score,
		Total:     total,
		CreatedAt: time.UnixMilli(now.UnixMilli()).UTC(),
	}, nil
}

// QueryResults returns the results of testID by score, highest first. Equal
// scores keep submission order.
func (s *Store) QueryResults(ctx context.Context, testID int64) ([]models.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.username, r.test_id, r.score, r.total, r.created_at
		FROM results r JOIN users u ON u.id = r.user_id
		WHERE r.test_id = $1
		ORDER BY r.score DESC, r.created_at ASC, r.id ASC`, testID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Result{}
	for rows.Next() {
		var (
			r       models.Result
			created int64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.TestID, &r.Score, &r.Total, &created); err != nil {
			return nil, fmt.Errorf("query results: %w", err)
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
