package rotsep

import (
	"context"
	"runtime"
	"time"

	"github.com/wgdzlh/rotsep/log"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 连作及暗管排水分层流水线
type Pipeline struct {
	Crops        []Crop
	DoubleCrops  []DoubleCrop
	TileRelevant ClassSet
	Band         Band
	Workers      int
	TileRows     int
	logTag       string
}

type Option func(*Pipeline)

func WithCrops(crops []Crop) Option {
	return func(p *Pipeline) { p.Crops = crops }
}

func WithDoubleCrops(dcs []DoubleCrop) Option {
	return func(p *Pipeline) { p.DoubleCrops = dcs }
}

func WithTileRelevant(s ClassSet) Option {
	return func(p *Pipeline) { p.TileRelevant = s }
}

func WithBand(b Band) Option {
	return func(p *Pipeline) { p.Band = b }
}

// n<=0时使用GOMAXPROCS
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.Workers = n }
}

func WithTileRows(n int) Option {
	return func(p *Pipeline) { p.TileRows = n }
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		Crops:        DefaultCrops(),
		DoubleCrops:  DefaultDoubleCrops(),
		TileRelevant: NewClassSet(TileRelevantClasses...),
		Band:         DefaultBand(),
		TileRows:     DEFAULT_TILE_ROWS,
		logTag:       "Pipeline:",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (p *Pipeline) tileRows() int {
	if p.TileRows > 0 {
		return p.TileRows
	}
	return DEFAULT_TILE_ROWS
}

// Validate checks the code tables: crop codes and double-crop classes must sit
// below CONTINUOUS_OFFSET, crop class sets must not share a class, and the
// band must be non-empty.
func (p *Pipeline) Validate() error {
	if p.Band.Min > p.Band.Max {
		return errorf(ErrInvalidConfig, "continuous band [%d,%d]", p.Band.Min, p.Band.Max)
	}
	owner := map[int32]string{}
	for _, c := range p.Crops {
		if c.Code <= 0 || c.Code >= CONTINUOUS_OFFSET {
			return errorf(ErrClassOutOfRange, "crop %s code %d", c.Name, c.Code)
		}
		for _, cls := range c.Classes.Codes() {
			if o, ok := owner[cls]; ok {
				return errorf(ErrOverlap, "class %d in crops %s and %s", cls, o, c.Name)
			}
			owner[cls] = c.Name
		}
	}
	for _, dc := range p.DoubleCrops {
		if dc.Class <= 0 || dc.Class >= CONTINUOUS_OFFSET {
			return errorf(ErrClassOutOfRange, "double crop class %d", dc.Class)
		}
	}
	return nil
}

// CheckInputs fails fast on missing frequency grids and on any grid whose
// shape or georeference differs from the base grid.
func (p *Pipeline) CheckInputs(in Inputs) error {
	if in.Base.Len() == 0 {
		return ErrEmptyGrid
	}
	check := func(name string, g Grid) error {
		if !g.SameShape(in.Base) {
			return errorf(ErrGridMisaligned, "%s %dx%d, base %dx%d", name, g.Cols, g.Rows, in.Base.Cols, in.Base.Rows)
		}
		if !g.Ref.Matches(in.Base.Ref) {
			return errorf(ErrRefMismatch, "%s", name)
		}
		return nil
	}
	for _, c := range p.Crops {
		freq, ok := in.Frequency[c.Name]
		if !ok {
			return errorf(ErrMissingFrequency, "crop %s", c.Name)
		}
		if err := check(c.Name+" frequency", freq); err != nil {
			return err
		}
	}
	return check("drainage", in.Drainage)
}

// 各阶段结果
type StageResult struct {
	Indicators      map[string]Mask
	Restricted      map[string]Mask
	SingleCrop      Layer
	DoubleCrop      Layer
	DrainRestricted Mask
	Final           Layer
}

// Stages runs the whole grid on the calling goroutine and keeps every
// intermediate.
func (p *Pipeline) Stages(in Inputs) (ret StageResult, err error) {
	if err = p.Validate(); err != nil {
		return
	}
	if err = p.CheckInputs(in); err != nil {
		return
	}
	return p.stages(in)
}

func (p *Pipeline) stages(in Inputs) (ret StageResult, err error) {
	acc, err := LayerFrom(in.Base)
	if err != nil {
		return
	}
	if ret.Indicators, err = ContinuousIndicators(in.Frequency, p.Crops, p.Band); err != nil {
		return
	}
	if ret.SingleCrop, ret.Restricted, err = EncodeSingleCrops(acc, in.Base, ret.Indicators, p.Crops); err != nil {
		return
	}
	if ret.DoubleCrop, err = ResolveDoubleCrops(ret.SingleCrop, ret.Indicators, p.DoubleCrops); err != nil {
		return
	}
	if ret.DrainRestricted, err = DrainageRestricted(in.Base, in.Drainage, p.TileRelevant); err != nil {
		return
	}
	ret.Final, err = StackDrainage(ret.DoubleCrop, in.Base, in.Drainage, p.TileRelevant)
	return
}

// Run processes horizontal strips of TileRows rows in parallel and assembles
// the encoded result. The output keeps the base grid's georeference and uses
// OUTPUT_NODATA as its no-data value.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (out Grid, err error) {
	if err = p.Validate(); err != nil {
		return
	}
	if err = p.CheckInputs(in); err != nil {
		return
	}
	var (
		cols  = in.Base.Cols
		rows  = in.Base.Rows
		step  = p.tileRows()
		start = time.Now()
	)
	out = NewGrid(cols, rows)
	out.Ref = in.Base.Ref
	out.NoData = OUTPUT_NODATA
	out.HasNoData = true
	log.Info(p.logTag+"start run", zap.Int("cols", cols), zap.Int("rows", rows), zap.Int("tileRows", step), zap.Int("workers", p.workers()))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.workers())
	for r0 := 0; r0 < rows; r0 += step {
		r1 := min(r0+step, rows)
		eg.Go(func() error {
			if e := egCtx.Err(); e != nil {
				return e
			}
			st, e := p.stages(in.strip(r0, r1))
			if e != nil {
				log.Error(p.logTag+"tile failed", zap.Int("row0", r0), zap.Int("row1", r1), zap.Error(e))
				return errorf(e, "tile rows [%d,%d)", r0, r1)
			}
			st.Final.EncodeInto(out.Pix[r0*cols : r1*cols])
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		out = Grid{}
		return
	}
	log.Info(p.logTag+"run done", zap.Int("pixels", out.Len()), zap.Duration("took", time.Since(start)))
	return
}
