package rotsep

// doubleCropCases splits the pixels still carrying dc.Class into four
// exclusive outcomes: both crops continuous, only the first, only the second,
// or neither.
func doubleCropCases(acc Layer, dc DoubleCrop, first, second Mask) (cases []Case, err error) {
	for _, m := range []Mask{first, second} {
		if !m.fits(acc.Cols, acc.Rows) {
			err = errorf(ErrGridMisaligned, "double crop %d indicator %dx%d, layer %dx%d", dc.Class, m.Cols, m.Rows, acc.Cols, acc.Rows)
			return
		}
	}
	dcMask := acc.Equal(Code{Class: dc.Class})
	f := first.And(dcMask)
	s := second.And(dcMask)
	cases = []Case{
		{When: f.And(s), Then: Set(Code{Class: dc.Class, Continuous: true})},
		{When: f.And(s.Not()), Then: Set(Code{Class: dc.First.Code, Continuous: true})},
		{When: s.And(f.Not()), Then: Set(Code{Class: dc.Second.Code, Continuous: true})},
		{When: dcMask.And(f.Not()).And(s.Not()), Then: Keep},
	}
	return
}

// 单个一年两熟地类的连作判定
func ResolveDoubleCrop(acc Layer, dc DoubleCrop, first, second Mask) (ret Layer, err error) {
	cases, err := doubleCropCases(acc, dc, first, second)
	if err != nil {
		return
	}
	return Select(acc, cases...)
}

// ResolveDoubleCrops resolves every double-crop class in one exclusive select,
// so a pixel claimed by two classes is reported rather than summed.
func ResolveDoubleCrops(acc Layer, indicators map[string]Mask, dcs []DoubleCrop) (ret Layer, err error) {
	var cases []Case
	for _, dc := range dcs {
		first, ok := indicators[dc.First.Name]
		if !ok {
			err = errorf(ErrMissingFrequency, "crop %s", dc.First.Name)
			return
		}
		second, ok := indicators[dc.Second.Name]
		if !ok {
			err = errorf(ErrMissingFrequency, "crop %s", dc.Second.Name)
			return
		}
		var cs []Case
		if cs, err = doubleCropCases(acc, dc, first, second); err != nil {
			return
		}
		cases = append(cases, cs...)
	}
	return Select(acc, cases...)
}
