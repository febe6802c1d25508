package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/wgdzlh/rotsep/log"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "rotsep",
	Short: "Separate continuous crops and tile-drained land in a CDL raster",
	Long: `rotsep recodes a Cropland Data Layer raster into a stacked code space:

  base class          original CDL code (rotation)
  crop + 500          continuous corn/cotton/soybeans/wheat (501, 502, 505, 522)
  double crop + 500   both crops of a double-crop class continuous
  any of the above + 1000   tile-drained`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		if err := log.Init(level, logFile); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.AddCommand(runCmd, codesCmd, statsCmd, runsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
