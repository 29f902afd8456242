// Package tests lists and deletes stored tests
package tests

import (
	"fmt"
	"text/tabwriter"

	"fjacquet/mocktest/cmd/root"
	"fjacquet/mocktest/internal/logging"

	"github.com/spf13/cobra"
)

var deleteID int64

// Cmd represents the tests command
var Cmd = &cobra.Command{
	Use:   "tests",
	Short: "List stored tests",
	Long: `List the stored tests with their question counts, newest first.
With --delete the test and its questions and results are removed.`,
	RunE: testsFunc,
}

func init() {
	Cmd.Flags().Int64Var(&deleteID, "delete", 0, "Delete the test with this id")
}

func testsFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}
	st := c.GetStore()

	if deleteID > 0 {
		if err := st.DeleteTest(cmd.Context(), deleteID); err != nil {
			return fmt.Errorf("error deleting test %d: %w", deleteID, err)
		}
		root.GetLogger().Info("Deleted test", logging.F(logging.FieldTestID, deleteID))
		return nil
	}

	list, err := st.ListTests(cmd.Context())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tQUESTIONS\tCREATED")
	for _, t := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", t.ID, t.Title, t.Category, t.QuestionCount, t.CreatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
