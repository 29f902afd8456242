// Package leaderboard prints the ranking of a test
package leaderboard

import (
	"fmt"
	"text/tabwriter"

	"fjacquet/mocktest/cmd/root"

	"github.com/spf13/cobra"
)

var testID int64

// Cmd represents the leaderboard command
var Cmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the leaderboard of a test",
	RunE:  leaderboardFunc,
}

func init() {
	Cmd.Flags().Int64Var(&testID, "test", 0, "Test id (required)")
	_ = Cmd.MarkFlagRequired("test")
}

func leaderboardFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer(cmd.Context())
	if err != nil {
		return err
	}
	board, err := c.GetGrader().Leaderboard(cmd.Context(), testID)
	if err != nil {
		return fmt.Errorf("error loading leaderboard: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tSCORE\tPERCENT")
	for _, e := range board {
		fmt.Fprintf(tw, "%d\t%s\t%d/%d\t%s%%\n", e.Rank, e.Username, e.Score, e.Total, e.Percent.StringFixed(2))
	}
	return tw.Flush()
}
