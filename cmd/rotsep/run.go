package main

import (
	"context"
	"fmt"
	"time"

	"github.com/wgdzlh/rotsep"
	"github.com/wgdzlh/rotsep/ledger"
	"github.com/wgdzlh/rotsep/log"
	"github.com/wgdzlh/rotsep/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Recode a CDL raster into continuous, double-crop and tile-drained codes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := rotsep.LoadConfig(configPath)
		if err != nil {
			return err
		}
		// 命令行参数优先于配置文件
		if !verbose && logFile == "" && (cfg.Log.Level != "" || cfg.Log.File != "") {
			if err = log.Init(cfg.Log.Level, cfg.Log.File); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "rotsep.yaml", "run config (YAML)")
	_ = runCmd.MarkFlagFilename("config", "yaml", "yml")
}

func readInputs(tb *rotsep.GdalToolbox, cfg *rotsep.Config) (in rotsep.Inputs, err error) {
	if in.Base, err = tb.ReadGrid(cfg.Inputs.BaseClass); err != nil {
		return
	}
	in.Frequency = map[string]rotsep.Grid{}
	for name, tif := range cfg.Inputs.Frequency {
		var g rotsep.Grid
		if g, err = tb.ReadGrid(tif); err != nil {
			return
		}
		in.Frequency[name] = g
	}
	if cfg.WarpDrainage {
		in.Drainage, err = tb.WarpToReference(cfg.Inputs.Drainage, in.Base)
	} else {
		in.Drainage, err = tb.ReadGrid(cfg.Inputs.Drainage)
	}
	return
}

func run(ctx context.Context, cfg *rotsep.Config) (err error) {
	var (
		started = time.Now()
		tb      = rotsep.NewGdalToolbox(cfg.TmpDir)
		p       = rotsep.NewPipeline(cfg.PipelineOptions()...)
	)
	in, err := readInputs(tb, cfg)
	if err != nil {
		return
	}
	if err = tb.CheckTarget(in.Base, cfg.Srid, cfg.Resolution); err != nil {
		return
	}
	if err = tb.Align(&in); err != nil {
		return
	}
	out, err := p.Run(ctx, in)
	if err != nil {
		return
	}
	if err = tb.WriteGrid(out, cfg.Output); err != nil {
		return
	}
	if cfg.SplitViews {
		nonTile, tile := rotsep.SplitDrained(out)
		if err = tb.WriteGrid(nonTile, utils.WithSuffix(cfg.Output, rotsep.SUFFIX_NOTILE)); err != nil {
			return
		}
		if err = tb.WriteGrid(tile, utils.WithSuffix(cfg.Output, rotsep.SUFFIX_TILE)); err != nil {
			return
		}
	}
	if cfg.Roi.IsSet() {
		if err = clip(tb, cfg, out); err != nil {
			return
		}
	}

	hist := rotsep.Histogram(out)
	sum := p.Summarize(hist)
	log.Info("run summary", zap.Stringer("summary", sum))
	if sum.Invalid > 0 {
		log.Warn("output has codes outside the legend", zap.Int64("pixels", sum.Invalid))
	}
	if cfg.Chart != "" {
		if err = rotsep.PlotHistogram(hist, cfg.Output, cfg.Chart); err != nil {
			return
		}
	}
	if cfg.Ledger != "" {
		err = record(ctx, cfg, p, out, sum, hist, started)
	}
	return
}

func clip(tb *rotsep.GdalToolbox, cfg *rotsep.Config, out rotsep.Grid) (err error) {
	srid := cfg.Roi.SridOr(cfg.Srid)
	wkt, err := tb.ResolveRoi(cfg.Roi, srid)
	if err != nil {
		return
	}
	if _, err = tb.RoiCoverage(wkt, srid, out); err != nil {
		return
	}
	return tb.ClipToRoi(cfg.Output, wkt, srid, utils.WithSuffix(cfg.Output, rotsep.SUFFIX_CLIP))
}

func record(ctx context.Context, cfg *rotsep.Config, p *rotsep.Pipeline, out rotsep.Grid,
	sum rotsep.Summary, hist map[int32]int64, started time.Time) (err error) {
	l, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return
	}
	defer l.Close()
	_, err = l.RecordRun(ctx, ledger.Run{
		StartedAt:  started,
		Duration:   time.Since(started),
		BaseClass:  cfg.Inputs.BaseClass,
		Output:     cfg.Output,
		Cols:       out.Cols,
		Rows:       out.Rows,
		BandMin:    p.Band.Min,
		BandMax:    p.Band.Max,
		Total:      sum.Total,
		Rotation:   sum.Rotation,
		Continuous: sum.Continuous,
		Drained:    sum.Drained,
		Invalid:    sum.Invalid,
	}, hist)
	return
}
