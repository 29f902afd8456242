package extraction

import (
	"context"
	"errors"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
)

// TestStore is the part of the record store the importer writes to.
type TestStore interface {
	InsertTest(ctx context.Context, title, category string) (int64, error)
	BulkInsertQuestions(ctx context.Context, testID int64, records []models.QuestionRecord) error
	DeleteTest(ctx context.Context, testID int64) error
}

// Importer turns one uploaded document into a new test with its questions.
type Importer struct {
	pipeline *Pipeline
	store    TestStore
	logger   logging.Logger
}

// NewImporter returns an Importer.
func NewImporter(pipeline *Pipeline, store TestStore, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Importer{
		pipeline: pipeline,
		store:    store,
		logger:   logger.WithField(logging.FieldComponent, "importer"),
	}
}

// Import extracts doc, creates the test row and commits the accepted
// questions in one transaction.
//
// An unreadable document is reported before anything is written. When the
// commit fails the test row is removed again, the report comes back with
// Committed false, and the *extractionerror.StoreError is returned as is.
func (im *Importer) Import(ctx context.Context, title, category string, doc Document) (*models.ExtractionReport, error) {
	res, err := im.pipeline.Extract(ctx, doc)
	if err != nil {
		return nil, err
	}

	testID, err := im.store.InsertTest(ctx, title, category)
	if err != nil {
		return nil, storeError("insert_test", 0, err)
	}

	report := im.pipeline.BuildReport(res.Text, testID)
	report.PageCount = res.PageCount
	report.EmptyPages = res.EmptyPages

	if err := im.store.BulkInsertQuestions(ctx, testID, report.Accepted); err != nil {
		serr := storeError("bulk_insert_questions", testID, err)
		im.logger.WithError(serr).Error("Failed to commit questions",
			logging.F(logging.FieldTestID, testID),
			logging.F(logging.FieldCount, len(report.Accepted)))

		if derr := im.store.DeleteTest(context.WithoutCancel(ctx), testID); derr != nil {
			im.logger.WithError(derr).Warn("Failed to remove test after failed commit",
				logging.F(logging.FieldTestID, testID))
		}
		return report, serr
	}

	report.Committed = true
	im.logger.Info("Imported test",
		logging.F(logging.FieldTestID, testID),
		logging.F(logging.FieldFile, doc.Name),
		logging.F(logging.FieldAccepted, len(report.Accepted)),
		logging.F(logging.FieldRejected, len(report.Rejected)))
	return report, nil
}

func storeError(op string, testID int64, err error) error {
	var se *extractionerror.StoreError
	if errors.As(err, &se) {
		return err
	}
	return &extractionerror.StoreError{Op: op, TestID: testID, Err: err}
}
