package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
)

// InsertTest creates a test row and returns its id.
func (s *Store) InsertTest(ctx context.Context, title, category string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO tests (title, category, created_at) VALUES ($1, $2, $3) RETURNING id`,
		title, category, s.now().UnixMilli()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert test: %w", err)
	}
	s.logger.Debug("Created test", logging.F(logging.FieldTestID, id))
	return id, nil
}

// GetTest returns one test with its question count.
func (s *Store) GetTest(ctx context.Context, id int64) (models.Test, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.category, t.created_at,
		       (SELECT COUNT(*) FROM questions q WHERE q.test_id = t.id)
		FROM tests t WHERE t.id = $1`, id)

	t, err := scanTest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Test{}, ErrNotFound
	}
	if err != nil {
		return models.Test{}, fmt.Errorf("get test %d: %w", id, err)
	}
	return t, nil
}

// ListTests returns every test, newest first.
func (s *Store) ListTests(ctx context.Context) ([]models.Test, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.category, t.created_at, COUNT(q.id)
		FROM tests t LEFT JOIN questions q ON q.test_id = t.id
		GROUP BY t.id, t.title, t.category, t.created_at
		ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tests := []models.Test{}
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, fmt.Errorf("list tests: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// DeleteTest removes a test. Its questions and results go with it.
func (s *Store) DeleteTest(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete test %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete test %d: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.logger.Info("Deleted test", logging.F(logging.FieldTestID, id))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTest(sc scanner) (models.Test, error) {
	var (
		t       models.Test
		created int64
	)
	if err := sc.Scan(&t.ID, &t.Title, &t.Category, &created, &t.QuestionCount); err != nil {
		return models.Test{}, err
	}
	t.CreatedAt = time.UnixMilli(created).UTC()
	return t, nil
}
