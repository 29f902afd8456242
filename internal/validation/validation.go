// Package validation checks command-line inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fjacquet/mocktest/internal/report"
)

// InputFile checks that path is a non-empty regular file with a .pdf
// extension, ignoring case.
func InputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("input %s is not a regular file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return fmt.Errorf("input %s is not a .pdf file", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("input file %s is empty", path)
	}
	return nil
}

// InputDir checks that path is an existing directory.
func InputDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input %s is not a directory", path)
	}
	return nil
}

// ReportFormat checks that format is one the report writer renders.
func ReportFormat(format string) error {
	if slices.Contains(report.Formats, strings.ToLower(format)) {
		return nil
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are %s",
		format, strings.Join(report.Formats, ", "))
}
