package http

import (
	"encoding/json"
	"net/http"

	"fjacquet/mocktest/internal/auth"
	"fjacquet/mocktest/internal/grading"
	"fjacquet/mocktest/internal/models"
)

// GET /healthz
func HandleHealth(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := tests.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// GET /tests
func HandleListTests(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := tests.ListTests(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /tests/{testID} returns the questions without their answers.
func HandleGetTest(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := testIDParam(r)
		if !ok {
			http.Error(w, "bad test id", http.StatusBadRequest)
			return
		}
		t, err := tests.GetTest(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		questions, err := tests.QueryQuestions(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		for i := range questions {
			questions[i] = questions[i].WithoutAnswer()
		}
		writeJSON(w, http.StatusOK, struct {
			Test      models.Test             `json:"test"`
			Questions []models.QuestionRecord `json:"questions"`
		}{t, questions})
	}
}

// POST /tests/{testID}/submit  { "answers": { "<question id>": "B", ... } }
func HandleSubmit(g *grading.Grader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.CurrentUserID(r.Context())
		if !ok {
			http.Error(w, "missing bearer", http.StatusUnauthorized)
			return
		}
		testID, ok := testIDParam(r)
		if !ok {
			http.Error(w, "bad test id", http.StatusBadRequest)
			return
		}
		var req struct {
			Answers map[int64]string `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		out, err := g.Submit(r.Context(), userID, testID, req.Answers)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// GET /tests/{testID}/leaderboard
func HandleLeaderboard(g *grading.Grader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID, ok := testIDParam(r)
		if !ok {
			http.Error(w, "bad test id", http.StatusBadRequest)
			return
		}
		board, err := g.Leaderboard(r.Context(), testID)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}
