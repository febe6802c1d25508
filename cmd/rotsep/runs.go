package main

import (
	"fmt"

	"github.com/wgdzlh/rotsep/ledger"

	"github.com/spf13/cobra"
)

var (
	runsLedger string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs recorded in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := ledger.Open(runsLedger)
		if err != nil {
			return err
		}
		defer l.Close()
		runs, err := l.Runs(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %s  %dx%d  continuous=%d drained=%d invalid=%d  %s -> %s\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Cols, r.Rows,
				r.Continuous, r.Drained, r.Invalid, r.BaseClass, r.Output)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsLedger, "ledger", "rotsep.db", "ledger database path")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list, 0 for all")
}
