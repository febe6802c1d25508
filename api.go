package rotsep

import "math"

// 栅格地理参照：仿射变换六参数与投影WKT
type GeoRef struct {
	Transform  [6]float64
	Projection string
}

func (r GeoRef) IsZero() bool {
	return r.Transform == [6]float64{} && r.Projection == ""
}

// 与另一参照是否一致（变换参数按容差比较，投影按文本比较）
func (r GeoRef) Matches(o GeoRef) bool {
	if r.IsZero() || o.IsZero() {
		return true
	}
	for i := range r.Transform {
		if math.Abs(r.Transform[i]-o.Transform[i]) > GEO_TRANSFORM_TOLERANCE {
			return false
		}
	}
	return r.Projection == "" || o.Projection == "" || r.Projection == o.Projection
}

// 整型栅格，按行优先存储
type Grid struct {
	Cols      int
	Rows      int
	Pix       []int32
	NoData    int32
	HasNoData bool
	Ref       GeoRef
}

func NewGrid(cols, rows int) Grid {
	return Grid{Cols: cols, Rows: rows, Pix: make([]int32, cols*rows)}
}

// 由给定像元值构造栅格
func GridOf(cols, rows int, pix ...int32) Grid {
	g := NewGrid(cols, rows)
	copy(g.Pix, pix)
	return g
}

func (g Grid) Len() int {
	return len(g.Pix)
}

func (g Grid) At(col, row int) int32 {
	return g.Pix[row*g.Cols+col]
}

func (g Grid) Valid(i int) bool {
	return !g.HasNoData || g.Pix[i] != g.NoData
}

// 无效值按0处理
func (g Grid) Value(i int) int32 {
	if !g.Valid(i) {
		return 0
	}
	return g.Pix[i]
}

func (g Grid) SameShape(o Grid) bool {
	return g.Cols == o.Cols && g.Rows == o.Rows && len(g.Pix) == len(o.Pix)
}

// 取[r0,r1)行的条带视图，与原栅格共享像元
func (g Grid) Strip(r0, r1 int) Grid {
	s := g
	s.Rows = r1 - r0
	s.Pix = g.Pix[r0*g.Cols : r1*g.Cols]
	s.Ref = GeoRef{}
	return s
}

// 0/1掩膜
type Mask struct {
	Cols int
	Rows int
	Bits []uint8
}

func NewMask(cols, rows int) Mask {
	return Mask{Cols: cols, Rows: rows, Bits: make([]uint8, cols*rows)}
}

func MaskOf(cols, rows int, bits ...uint8) Mask {
	m := NewMask(cols, rows)
	copy(m.Bits, bits)
	return m
}

func (m Mask) Len() int {
	return len(m.Bits)
}

func (m Mask) Has(i int) bool {
	return m.Bits[i] != 0
}

// 取反：m + m.Not() 处处为1
func (m Mask) Not() Mask {
	r := NewMask(m.Cols, m.Rows)
	for i, b := range m.Bits {
		r.Bits[i] = 1 - b
	}
	return r
}

func (m Mask) And(o Mask) Mask {
	r := NewMask(m.Cols, m.Rows)
	for i, b := range m.Bits {
		r.Bits[i] = b & o.Bits[i]
	}
	return r
}

func (m Mask) Count() (n int) {
	for _, b := range m.Bits {
		n += int(b)
	}
	return
}

func (m Mask) fits(cols, rows int) bool {
	return m.Cols == cols && m.Rows == rows && len(m.Bits) == cols*rows
}

// 单个像元的分层标签，仅在输出时编码为整数
type Code struct {
	Class      int32
	Continuous bool
	Drained    bool
}

// 流水线累加层
type Layer struct {
	Cols  int
	Rows  int
	Codes []Code
}

// 流水线输入：基础分类、各作物频次与暗管排水掩膜
type Inputs struct {
	Base      Grid
	Frequency map[string]Grid
	Drainage  Grid
}

func (in Inputs) strip(r0, r1 int) Inputs {
	s := Inputs{
		Base:      in.Base.Strip(r0, r1),
		Frequency: make(map[string]Grid, len(in.Frequency)),
		Drainage:  in.Drainage.Strip(r0, r1),
	}
	for k, v := range in.Frequency {
		s.Frequency[k] = v.Strip(r0, r1)
	}
	return s
}
