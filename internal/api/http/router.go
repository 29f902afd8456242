// Package http exposes the mock-test platform as a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"fjacquet/mocktest/internal/auth"
	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/grading"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// TestCatalog is the read and delete side of the record store.
type TestCatalog interface {
	ListTests(ctx context.Context) ([]models.Test, error)
	GetTest(ctx context.Context, id int64) (models.Test, error)
	QueryQuestions(ctx context.Context, testID int64) ([]models.QuestionRecord, error)
	DeleteTest(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

// UploadOptions controls how uploaded PDFs are received.
type UploadOptions struct {
	Dir       string
	KeepFiles bool
	MaxBytes  int64
}

// Deps are the collaborators the handlers need.
type Deps struct {
	Tests    TestCatalog
	Auth     *auth.Service
	Pipeline *extraction.Pipeline
	Importer *extraction.Importer
	Grader   *grading.Grader
	Reports  *report.Writer
	Logger   logging.Logger

	Upload         UploadOptions
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter wires every route of the API.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.NewLogrusAdapter("info", "text")
	}
	if d.Upload.MaxBytes <= 0 {
		d.Upload.MaxBytes = 20 << 20
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(d.Logger), middleware.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(middleware.Timeout(d.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", HandleHealth(d.Tests))

	r.Post("/auth/register", HandleRegister(d.Auth))
	r.Post("/auth/login", HandleLogin(d.Auth))

	r.Get("/tests", HandleListTests(d.Tests))
	r.Get("/tests/{testID}/leaderboard", HandleLeaderboard(d.Grader))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(d.Auth))
		pr.Get("/tests/{testID}", HandleGetTest(d.Tests))
		pr.Post("/tests/{testID}/submit", HandleSubmit(d.Grader))
	})

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(auth.Middleware(d.Auth), auth.RequireAdmin)
		ar.Post("/tests", HandleUploadTest(d.Importer, d.Reports, d.Upload, d.Logger))
		ar.Post("/extract", HandleExtract(d.Pipeline, d.Reports, d.Upload))
		ar.Delete("/tests/{testID}", HandleDeleteTest(d.Tests))
	})

	return r
}

// requestLogger logs one line per request through logger.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("HTTP request",
				logging.F("method", r.Method),
				logging.F("path", r.URL.Path),
				logging.F(logging.FieldStatus, ww.Status()),
				logging.F("bytes", ww.BytesWritten()),
				logging.F("request_id", middleware.GetReqID(r.Context())),
				logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
		})
	}
}
