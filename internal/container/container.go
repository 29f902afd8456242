// Package container provides dependency injection for the mocktest application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"net/http"

	api "fjacquet/mocktest/internal/api/http"
	"fjacquet/mocktest/internal/auth"
	"fjacquet/mocktest/internal/config"
	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/grading"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/pdfextract"
	"fjacquet/mocktest/internal/report"
	"fjacquet/mocktest/internal/store"
)

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor pdfextract.TextExtractor
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithExtractor replaces the PDF text extractor, typically with a mock.
func WithExtractor(e pdfextract.TextExtractor) Option {
	return func(o *options) { o.extractor = e }
}

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. Close releases the database.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.Store
	extractor pdfextract.TextExtractor
	pipeline  *extraction.Pipeline
	importer  *extraction.Importer
	auth      *auth.Service
	grader    *grading.Grader
	reports   *report.Writer
}

// NewContainer creates and wires all application dependencies. It opens the
// record store, so ctx bounds the initial connection.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	driver, err := store.ParseDriver(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, driver, cfg.Database.DSN, logger)
	if err != nil {
		return nil, err
	}

	extractor := o.extractor
	if extractor == nil {
		extractor = pdfextract.NewPDFExtractor(logger)
	}

	pipeline := extraction.NewPipeline(extractor, logger, cfg.ExtractionTimeout())

	c := &Container{
		logger:    logger,
		config:    cfg,
		store:     st,
		extractor: extractor,
		pipeline:  pipeline,
		importer:  extraction.NewImporter(pipeline, st, logger),
		auth:      auth.NewService(st, cfg.Auth.JWTSecret, cfg.TokenTTL(), logger),
		grader:    grading.NewGrader(st, logger),
		reports:   report.NewWriter(logger, cfg.CSVDelimiterRune(), cfg.Report.SpanPreviewLength),
	}

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldDriver, string(driver)),
		logging.F("auth_enabled", cfg.Auth.JWTSecret != ""))
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the record store.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetExtractor returns the PDF text extractor.
func (c *Container) GetExtractor() pdfextract.TextExtractor {
	return c.extractor
}

// GetPipeline returns the extraction pipeline.
func (c *Container) GetPipeline() *extraction.Pipeline {
	return c.pipeline
}

// GetImporter returns the upload importer.
func (c *Container) GetImporter() *extraction.Importer {
	return c.importer
}

// GetAuth returns the account and token service.
func (c *Container) GetAuth() *auth.Service {
	return c.auth
}

// GetGrader returns the grading service.
func (c *Container) GetGrader() *grading.Grader {
	return c.grader
}

// GetReportWriter returns the extraction report writer.
func (c *Container) GetReportWriter() *report.Writer {
	return c.reports
}

// Handler builds the HTTP API from the container's services.
func (c *Container) Handler() http.Handler {
	return api.NewRouter(api.Deps{
		Tests:    c.store,
		Auth:     c.auth,
		Pipeline: c.pipeline,
		Importer: c.importer,
		Grader:   c.grader,
		Reports:  c.reports,
		Logger:   c.logger,
		Upload: api.UploadOptions{
			Dir:       c.config.Upload.Dir,
			KeepFiles: c.config.Upload.KeepFiles,
			MaxBytes:  c.config.MaxUploadBytes(),
		},
		CORSOrigins:    c.config.Server.CORSOrigins,
		RequestTimeout: c.config.RequestTimeout(),
	})
}

// Close releases the record store.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	c.logger.Info("Container closed")
	return nil
}
