// Package common contains shared functionality for command handlers
package common

import (
	"fmt"

	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/report"

	"github.com/spf13/cobra"
)

// AddFormatFlag registers --format on cmd.
func AddFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "f", "", fmt.Sprintf("Report format %v (default from config)", report.Formats))
}

// ResolveFormat returns flagValue, or fallback when the flag is empty.
func ResolveFormat(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	return fallback
}

// WriteReport renders rep to output, or to the command's stdout when output
// is empty.
func WriteReport(cmd *cobra.Command, w *report.Writer, rep *models.ExtractionReport, format, output string) error {
	if output == "" {
		return w.Write(cmd.OutOrStdout(), rep, format)
	}
	return w.WriteFile(rep, format, output)
}
