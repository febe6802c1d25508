package rotsep

// 暗管排水掩膜限制在可排水地类上，无效值按0处理
func DrainageRestricted(base, drainage Grid, relevant ClassSet) (ret Mask, err error) {
	if !base.SameShape(drainage) {
		err = errorf(ErrGridMisaligned, "drainage %dx%d, base %dx%d", drainage.Cols, drainage.Rows, base.Cols, base.Rows)
		return
	}
	ret = Membership(base, relevant)
	for i := range ret.Bits {
		if drainage.Value(i) == 0 {
			ret.Bits[i] = 0
		}
	}
	return
}

// StackDrainage flags drained, tile-relevant pixels; encoding adds
// DRAINAGE_OFFSET to whatever rotation code they already carry.
func StackDrainage(acc Layer, base, drainage Grid, relevant ClassSet) (ret Layer, err error) {
	drained, err := DrainageRestricted(base, drainage, relevant)
	if err != nil {
		return
	}
	if !drained.fits(acc.Cols, acc.Rows) {
		err = errorf(ErrGridMisaligned, "drainage %dx%d, layer %dx%d", drained.Cols, drained.Rows, acc.Cols, acc.Rows)
		return
	}
	for i, c := range acc.Codes {
		if c.Drained && drained.Has(i) {
			err = errorf(ErrAlreadyDrained, "pixel %d", i)
			return
		}
	}
	return Select(acc, Case{When: drained, Then: drain})
}

func drain(c Code) Code {
	c.Drained = true
	return c
}
