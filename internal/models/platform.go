package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Test is a mock test that owns a set of questions.
type Test struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// User is a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may upload and delete tests.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Result is one graded submission of a test.
type Result struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	TestID    int64     `json:"test_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardEntry is one ranked row of a test's leaderboard.
type LeaderboardEntry struct {
	Rank      int             `json:"rank"`
	UserID    int64           `json:"user_id"`
	Username  string          `json:"username"`
	Score     int             `json:"score"`
	Total     int             `json:"total"`
	Percent   decimal.Decimal `json:"percent"`
	CreatedAt time.Time       `json:"created_at"`
}
