package rotsep

import (
	"strconv"

	"github.com/wgdzlh/rotsep/log"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	CHART_MIN_PIXELS = 1
	CHART_WIDTH      = 14 * vg.Inch
	CHART_HEIGHT     = 6 * vg.Inch
)

// 绘制连作及暗管排水编码的像元数柱状图，非连作且未排水的地类不绘制
func PlotHistogram(h map[int32]int64, title, file string) (err error) {
	var (
		values plotter.Values
		names  []string
	)
	for _, v := range HistogramKeys(h) {
		if v < CONTINUOUS_OFFSET || h[v] < CHART_MIN_PIXELS {
			continue
		}
		values = append(values, float64(h[v]))
		names = append(names, strconv.Itoa(int(v)))
	}
	if len(values) == 0 {
		log.Info("Chart:no stacked codes to plot", zap.String("file", file))
		return
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "code"
	p.Y.Label.Text = "pixels"
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		log.Error("Chart:build bars failed", zap.Error(err))
		return
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	if err = p.Save(CHART_WIDTH, CHART_HEIGHT, file); err != nil {
		log.Error("Chart:save failed", zap.String("file", file), zap.Error(err))
	}
	return
}
