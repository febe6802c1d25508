package rotsep

// 互斥分支：When为1的像元改写为Then(原标签)
type Case struct {
	When Mask
	Then func(Code) Code
}

// 置为固定标签
func Set(c Code) func(Code) Code {
	return func(Code) Code { return c }
}

// 保持原标签
func Keep(c Code) Code {
	return c
}

// Select replaces the erase-then-add arithmetic of the stacked encoding.
// Each pixel is rewritten by the one case whose mask covers it; pixels no
// case covers keep their code. A pixel covered by two cases fails with
// ErrOverlap instead of producing a summed code.
func Select(l Layer, cases ...Case) (ret Layer, err error) {
	for i, c := range cases {
		if !c.When.fits(l.Cols, l.Rows) {
			err = errorf(ErrGridMisaligned, "case %d mask %dx%d, layer %dx%d", i, c.When.Cols, c.When.Rows, l.Cols, l.Rows)
			return
		}
	}
	ret = l.Clone()
	for p := range ret.Codes {
		hit := -1
		for i, c := range cases {
			if !c.When.Has(p) {
				continue
			}
			if hit >= 0 {
				err = errorf(ErrOverlap, "pixel %d matched cases %d and %d", p, hit, i)
				return
			}
			hit = i
		}
		if hit >= 0 {
			ret.Codes[p] = cases[hit].Then(l.Codes[p])
		}
	}
	return
}

// CheckDisjoint reports the first pixel where both masks are set.
func CheckDisjoint(a, b Mask) error {
	if !a.fits(b.Cols, b.Rows) {
		return errorf(ErrGridMisaligned, "masks %dx%d and %dx%d", a.Cols, a.Rows, b.Cols, b.Rows)
	}
	for i := range a.Bits {
		if a.Bits[i] != 0 && b.Bits[i] != 0 {
			return errorf(ErrOverlap, "pixel %d", i)
		}
	}
	return nil
}
