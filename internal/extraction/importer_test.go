package extraction

import (
	"context"
	"errors"
	"testing"

	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/pdfextract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	nextID     int64
	insertErr  error
	bulkErr    error
	tests      map[int64]string
	questions  map[int64][]models.QuestionRecord
	deleteCall []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:    1,
		tests:     map[int64]string{},
		questions: map[int64][]models.QuestionRecord{},
	}
}

func (f *fakeStore) InsertTest(_ context.Context, title, _ string) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	id := f.nextID
	f.nextID++
	f.tests[id] = title
	return id, nil
}

func (f *fakeStore) BulkInsertQuestions(_ context.Context, testID int64, records []models.QuestionRecord) error {
	if f.bulkErr != nil {
		return f.bulkErr
	}
	f.questions[testID] = append([]models.QuestionRecord(nil), records...)
	return nil
}

func (f *fakeStore) DeleteTest(_ context.Context, testID int64) error {
	f.deleteCall = append(f.deleteCall, testID)
	delete(f.tests, testID)
	delete(f.questions, testID)
	return nil
}

func newTestImporter(ex pdfextract.TextExtractor, st TestStore) *Importer {
	logger := logging.NewMockLogger()
	return NewImporter(NewPipeline(ex, logger, 0), st, logger)
}

func TestImport(t *testing.T) {
	st := newFakeStore()
	im := newTestImporter(pdfextract.NewMockExtractor(sampleText, nil), st)

	report, err := im.Import(context.Background(), "Arithmetic", "math", BytesDocument("a.pdf", []byte("%PDF")))
	require.NoError(t, err)

	assert.True(t, report.Committed)
	assert.Equal(t, int64(1), report.TestID)
	assert.Equal(t, "Arithmetic", st.tests[1])
	require.Len(t, st.questions[1], 2)
	assert.Equal(t, "What is 2+2?", st.questions[1][0].QuestionText)
	assert.Equal(t, int64(1), st.questions[1][1].TestID)
}

func TestImport_UnreadableWritesNothing(t *testing.T) {
	st := newFakeStore()
	ex := pdfextract.NewMockExtractor("", &extractionerror.DocumentUnreadableError{Err: errors.New("broken")})
	im := newTestImporter(ex, st)

	report, err := im.Import(context.Background(), "T", "c", BytesDocument("x.pdf", []byte("x")))
	assert.Nil(t, report)
	assert.True(t, extractionerror.IsDocumentUnreadable(err))
	assert.Empty(t, st.tests)
}

func TestImport_CommitFailure(t *testing.T) {
	st := newFakeStore()
	cause := &extractionerror.StoreError{Op: "bulk_insert_questions", TestID: 1, Err: errors.New("constraint failed")}
	st.bulkErr = cause
	im := newTestImporter(pdfextract.NewMockExtractor(sampleText, nil), st)

	report, err := im.Import(context.Background(), "T", "c", BytesDocument("x.pdf", []byte("x")))
	require.Error(t, err)
	assert.Same(t, cause, err)

	require.NotNil(t, report)
	assert.False(t, report.Committed)
	assert.Len(t, report.Accepted, 2)
	assert.Equal(t, []int64{1}, st.deleteCall)
	assert.Empty(t, st.tests)
}

func TestImport_InsertTestFailure(t *testing.T) {
	st := newFakeStore()
	st.insertErr = errors.New("db down")
	im := newTestImporter(pdfextract.NewMockExtractor(sampleText, nil), st)

	_, err := im.Import(context.Background(), "T", "c", BytesDocument("x.pdf", []byte("x")))
	se, ok := extractionerror.AsStoreError(err)
	require.True(t, ok)
	assert.Equal(t, "insert_test", se.Op)
	assert.Empty(t, st.deleteCall)
}

func TestImport_EmptyDocumentStillCreatesTest(t *testing.T) {
	st := newFakeStore()
	im := newTestImporter(pdfextract.NewMockExtractor("", nil), st)

	report, err := im.Import(context.Background(), "Blank", "", BytesDocument("blank.pdf", []byte("x")))
	require.NoError(t, err)
	assert.True(t, report.Committed)
	assert.Equal(t, 0, report.TotalBlocksFound)
	assert.Equal(t, 1, report.EmptyPages)
}
