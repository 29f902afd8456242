package pdfextract

import (
	"context"
	"strings"

	"fjacquet/mocktest/internal/logging"
)

// PageSource gives 1-based access to the text of each page of an opened
// document.
type PageSource interface {
	NumPage() int
	PageText(num int) (string, error)
}

// ConcatPages joins the text of every page in page order. Each non-empty page
// contributes its text terminated by a newline so tokens on adjacent pages
// never fuse. Pages without text, or whose content fails to decode, add
// nothing and are counted in EmptyPages.
func ConcatPages(ctx context.Context, src PageSource, logger logging.Logger) (Result, error) {
	var b strings.Builder
	res := Result{PageCount: src.NumPage()}

	for i := 1; i <= res.PageCount; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		text, err := src.PageText(i)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Warn("Skipping page with undecodable content",
					logging.F("page", i))
			}
			res.EmptyPages++
			continue
		}
		if strings.TrimSpace(text) == "" {
			res.EmptyPages++
			continue
		}

		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteByte('\n')
		}
	}

	res.Text = b.String()
	return res, nil
}
