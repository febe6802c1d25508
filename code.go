package rotsep

import (
	"fmt"
	"slices"
)

// 编码为整数：地类 + 500(连作) + 1000(暗管排水)
func (c Code) Encode() int32 {
	v := c.Class
	if c.Continuous {
		v += CONTINUOUS_OFFSET
	}
	if c.Drained {
		v += DRAINAGE_OFFSET
	}
	return v
}

// Decode splits a stacked integer back into its record. It only checks the
// offset arithmetic; Pipeline.ValidCode checks the class against the tables.
func Decode(v int32) (c Code, err error) {
	if v < 0 || v >= 2*DRAINAGE_OFFSET {
		err = errorf(ErrInvalidCode, "%d", v)
		return
	}
	if v >= DRAINAGE_OFFSET {
		c.Drained = true
		v -= DRAINAGE_OFFSET
	}
	if v >= CONTINUOUS_OFFSET {
		c.Continuous = true
		v -= CONTINUOUS_OFFSET
	}
	c.Class = v
	return
}

func (c Code) Label() string {
	name, ok := ClassNames[c.Class]
	if !ok {
		name = fmt.Sprintf("class %d", c.Class)
	}
	if c.Continuous {
		name = "continuous " + name
	}
	if c.Drained {
		name += ", tile drained"
	}
	return name
}

// 由基础分类构造初始层，无效值记为地类0
func LayerFrom(base Grid) (l Layer, err error) {
	l = Layer{Cols: base.Cols, Rows: base.Rows, Codes: make([]Code, len(base.Pix))}
	for i := range base.Pix {
		v := base.Value(i)
		if v < 0 || v >= CONTINUOUS_OFFSET {
			err = errorf(ErrClassOutOfRange, "pixel %d has class %d", i, v)
			return
		}
		l.Codes[i].Class = v
	}
	return
}

func (l Layer) Len() int {
	return len(l.Codes)
}

// 与给定标签完全相等的像元
func (l Layer) Equal(c Code) Mask {
	m := NewMask(l.Cols, l.Rows)
	for i, v := range l.Codes {
		if v == c {
			m.Bits[i] = 1
		}
	}
	return m
}

func (l Layer) Clone() Layer {
	r := l
	r.Codes = slices.Clone(l.Codes)
	return r
}

// 输出为整数编码栅格
func (l Layer) Encode() Grid {
	g := NewGrid(l.Cols, l.Rows)
	l.EncodeInto(g.Pix)
	return g
}

func (l Layer) EncodeInto(dst []int32) {
	for i, c := range l.Codes {
		dst[i] = c.Encode()
	}
}

// 图例条目
type LegendEntry struct {
	Value int32
	Code  Code
	Label string
}

// 列出所有连作及暗管排水派生编码；非连作地类原值输出
func Legend(crops []Crop, dcs []DoubleCrop) (ret []LegendEntry) {
	var base []Code
	for _, c := range crops {
		base = append(base, Code{Class: c.Code, Continuous: true})
	}
	for _, dc := range dcs {
		base = append(base, Code{Class: dc.Class, Continuous: true})
	}
	for _, drained := range []bool{false, true} {
		for _, c := range base {
			c.Drained = drained
			ret = append(ret, LegendEntry{Value: c.Encode(), Code: c, Label: c.Label()})
		}
	}
	slices.SortFunc(ret, func(a, b LegendEntry) int { return int(a.Value - b.Value) })
	return
}
