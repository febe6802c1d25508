package main

import (
	"fmt"

	"github.com/wgdzlh/rotsep"
	"github.com/wgdzlh/rotsep/utils"

	"github.com/spf13/cobra"
)

var decodeValues string

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print the stacked code legend, or decode values with --decode",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := rotsep.NewPipeline()
		out := cmd.OutOrStdout()
		if decodeValues != "" {
			for _, v := range utils.StrToInts(decodeValues, ",") {
				c, err := rotsep.Decode(int32(v))
				if err != nil || !p.ValidCode(c) {
					fmt.Fprintf(out, "%6d  invalid\n", v)
					continue
				}
				fmt.Fprintf(out, "%6d  %s\n", v, c.Label())
			}
			return nil
		}
		fmt.Fprintln(out, "   < 500  base class, passed through")
		for _, e := range rotsep.Legend(p.Crops, p.DoubleCrops) {
			fmt.Fprintf(out, "%8d  %s\n", e.Value, e.Label)
		}
		fmt.Fprintln(out, "1000-1499 tile-drained base class")
		return nil
	},
}

func init() {
	codesCmd.Flags().StringVar(&decodeValues, "decode", "", "comma separated values to decode")
}
