package main

import (
	"fmt"

	"github.com/wgdzlh/rotsep"

	"github.com/spf13/cobra"
)

var (
	statsChart string
	statsTmp   string
)

var statsCmd = &cobra.Command{
	Use:   "stats <tif>",
	Short: "Histogram and category summary of a recoded raster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tb := rotsep.NewGdalToolbox(statsTmp)
		g, err := tb.ReadGrid(args[0])
		if err != nil {
			return err
		}
		p := rotsep.NewPipeline()
		hist := rotsep.Histogram(g)
		out := cmd.OutOrStdout()
		for _, v := range rotsep.HistogramKeys(hist) {
			label := "invalid"
			if c, e := rotsep.Decode(v); e == nil && p.ValidCode(c) {
				label = c.Label()
			}
			fmt.Fprintf(out, "%6d %12d  %s\n", v, hist[v], label)
		}
		fmt.Fprintln(out, p.Summarize(hist))
		if statsChart != "" {
			return rotsep.PlotHistogram(hist, args[0], statsChart)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsChart, "chart", "", "write a bar chart PNG of stacked codes")
	statsCmd.Flags().StringVar(&statsTmp, "tmp-dir", "", "temporary directory")
}
