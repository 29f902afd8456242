package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fjacquet/mocktest/internal/extraction"
	"fjacquet/mocktest/internal/extractionerror"
	"fjacquet/mocktest/internal/fileutils"
	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/report"
)

// errUploadTooLarge is returned by readUpload when the body exceeds the limit.
var errUploadTooLarge = errors.New("upload too large")

type upload struct {
	name     string
	data     []byte
	title    string
	category string
}

// readUpload reads the multipart "pdf" file and the title/category fields.
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return upload{}, errUploadTooLarge
		}
		return upload{}, fmt.Errorf("bad multipart form: %w", err)
	}

	f, hdr, err := r.FormFile("pdf")
	if err != nil {
		return upload{}, fmt.Errorf("pdf file required: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, fmt.Errorf("read upload: %w", err)
	}
	return upload{
		name:     hdr.Filename,
		data:     data,
		title:    strings.TrimSpace(r.FormValue("title")),
		category: strings.TrimSpace(r.FormValue("category")),
	}, nil
}

func writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUploadTooLarge) {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// POST /admin/tests  multipart: pdf, title, category
func HandleUploadTest(im *extraction.Importer, reports *report.Writer, opts UploadOptions, logger logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up, err := readUpload(w, r, opts.MaxBytes)
		if err != nil {
			writeUploadError(w, err)
			return
		}
		if up.title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}

		rep, err := im.Import(r.Context(), up.title, up.category, extraction.BytesDocument(up.name, up.data))
		switch {
		case err == nil:
			if opts.KeepFiles {
				keepUpload(opts.Dir, up, logger)
			}
			writeJSON(w, http.StatusCreated, reports.View(rep))
		case extractionerror.IsDocumentUnreadable(err):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case rep != nil:
			writeJSON(w, http.StatusInternalServerError, struct {
				Error string `json:"error"`
				report.View
			}{err.Error(), reports.View(rep)})
		default:
			http.Error(w, "import failed", http.StatusInternalServerError)
		}
	}
}

// keepUpload stores the PDF of a committed test. The test stays committed when
// this fails.
func keepUpload(dir string, up upload, logger logging.Logger) {
	path, err := fileutils.SaveStream(dir, up.name, bytes.NewReader(up.data))
	if err != nil {
		logger.WithError(err).Warn("Failed to keep uploaded file", logging.F(logging.FieldFile, up.name))
		return
	}
	logger.Info("Stored uploaded PDF", logging.F(logging.FieldFile, path))
}

// POST /admin/extract  multipart: pdf. Nothing is stored.
func HandleExtract(p *extraction.Pipeline, reports *report.Writer, opts UploadOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		up, err := readUpload(w, r, opts.MaxBytes)
		if err != nil {
			writeUploadError(w, err)
			return
		}

		rep, err := p.Run(r.Context(), extraction.BytesDocument(up.name, up.data), 0)
		if err != nil {
			if extractionerror.IsDocumentUnreadable(err) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "extraction failed", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, reports.View(rep))
	}
}

// DELETE /admin/tests/{testID}
func HandleDeleteTest(tests TestCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := testIDParam(r)
		if !ok {
			http.Error(w, "bad test id", http.StatusBadRequest)
			return
		}
		if err := tests.DeleteTest(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
