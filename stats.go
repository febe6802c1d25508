package rotsep

import (
	"slices"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidCode reports whether c can come out of this pipeline: a plain class
// below CONTINUOUS_OFFSET, a crop's continuous code, or a double-crop class's
// continuous code, each optionally drained.
func (p *Pipeline) ValidCode(c Code) bool {
	if c.Class < 0 || c.Class >= CONTINUOUS_OFFSET {
		return false
	}
	if !c.Continuous {
		return true
	}
	for _, crop := range p.Crops {
		if crop.Code == c.Class {
			return true
		}
	}
	for _, dc := range p.DoubleCrops {
		if dc.Class == c.Class {
			return true
		}
	}
	return false
}

// 各编码像元数，跳过无效值
func Histogram(g Grid) map[int32]int64 {
	ret := map[int32]int64{}
	for i, v := range g.Pix {
		if g.Valid(i) {
			ret[v]++
		}
	}
	return ret
}

// 直方图编码升序
func HistogramKeys(h map[int32]int64) []int32 {
	keys := make([]int32, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// 分类汇总
type Summary struct {
	Total      int64
	Rotation   int64
	Continuous int64
	Drained    int64
	Invalid    int64
}

func (p *Pipeline) Summarize(h map[int32]int64) (s Summary) {
	for v, n := range h {
		s.Total += n
		c, err := Decode(v)
		if err != nil || !p.ValidCode(c) {
			s.Invalid += n
			continue
		}
		if c.Continuous {
			s.Continuous += n
		} else {
			s.Rotation += n
		}
		if c.Drained {
			s.Drained += n
		}
	}
	return
}

func (s Summary) String() string {
	pr := message.NewPrinter(language.English)
	return pr.Sprintf("pixels %d: rotation %d, continuous %d, tile drained %d, invalid %d",
		s.Total, s.Rotation, s.Continuous, s.Drained, s.Invalid)
}

// SplitDrained separates the output into a non-tile view (1..DRAINAGE_OFFSET-1)
// and a tile-drained view (>= DRAINAGE_OFFSET). Pixels outside a view become
// no-data in it.
func SplitDrained(g Grid) (nonTile, tile Grid) {
	nonTile = NewGrid(g.Cols, g.Rows)
	tile = NewGrid(g.Cols, g.Rows)
	for _, v := range []*Grid{&nonTile, &tile} {
		v.Ref = g.Ref
		v.NoData = OUTPUT_NODATA
		v.HasNoData = true
	}
	for i, v := range g.Pix {
		if !g.Valid(i) {
			continue
		}
		switch {
		case v >= DRAINAGE_OFFSET:
			tile.Pix[i] = v
		case v > 0:
			nonTile.Pix[i] = v
		}
	}
	return
}
