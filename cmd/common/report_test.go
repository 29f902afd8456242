package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/mocktest/internal/logging"
	"fjacquet/mocktest/internal/models"
	"fjacquet/mocktest/internal/report"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "json", ResolveFormat("json", "text"))
	assert.Equal(t, "text", ResolveFormat("", "text"))
}

func TestAddFormatFlag(t *testing.T) {
	var format string
	cmd := &cobra.Command{Use: "x"}
	AddFormatFlag(cmd, &format)

	require.NoError(t, cmd.Flags().Parse([]string{"-f", "yaml"}))
	assert.Equal(t, "yaml", format)
}

func TestWriteReport(t *testing.T) {
	w := report.NewWriter(logging.NewMockLogger(), ',', 0)
	rep := models.NewExtractionReport(7)

	t.Run("stdout", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &cobra.Command{Use: "x"}
		cmd.SetOut(&out)
		require.NoError(t, WriteReport(cmd, w, rep, report.FormatText, ""))
		assert.Contains(t, out.String(), rep.Summary())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "r.json")
		require.NoError(t, WriteReport(&cobra.Command{}, w, rep, report.FormatJSON, path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"test_id": 7`)
	})
}
