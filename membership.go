package rotsep

import "slices"

// 地类编码集合，按集合成员判断而非区间
type ClassSet struct {
	codes map[int32]struct{}
}

func NewClassSet(codes ...int32) ClassSet {
	s := ClassSet{codes: make(map[int32]struct{}, len(codes))}
	for _, c := range codes {
		s.codes[c] = struct{}{}
	}
	return s
}

func (s ClassSet) Has(code int32) bool {
	_, ok := s.codes[code]
	return ok
}

func (s ClassSet) Len() int {
	return len(s.codes)
}

// 升序编码列表
func (s ClassSet) Codes() []int32 {
	ret := make([]int32, 0, len(s.codes))
	for c := range s.codes {
		ret = append(ret, c)
	}
	slices.Sort(ret)
	return ret
}

// Membership marks pixels whose base class belongs to set. No-data pixels are 0.
// The result depends only on base and set, never on a recoded layer.
func Membership(base Grid, set ClassSet) Mask {
	m := NewMask(base.Cols, base.Rows)
	for i := range base.Pix {
		if base.Valid(i) && set.Has(base.Pix[i]) {
			m.Bits[i] = 1
		}
	}
	return m
}
