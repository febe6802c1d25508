package rotsep

// 连作掩膜限制在该作物的地类上
func RestrictedContinuous(indicator Mask, base Grid, c Crop) (ret Mask, err error) {
	if !indicator.fits(base.Cols, base.Rows) {
		err = errorf(ErrGridMisaligned, "crop %s indicator %dx%d, base %dx%d", c.Name, indicator.Cols, indicator.Rows, base.Cols, base.Rows)
		return
	}
	ret = indicator.And(Membership(base, c.Classes))
	return
}

// EncodeSingleCrops walks crops in order and, per crop, rewrites every pixel
// that is both classified as the crop and continuous for it to the crop's
// continuous code. Each crop sees the previous crop's output.
func EncodeSingleCrops(acc Layer, base Grid, indicators map[string]Mask, crops []Crop) (ret Layer, restricted map[string]Mask, err error) {
	ret = acc
	restricted = make(map[string]Mask, len(crops))
	for _, c := range crops {
		indicator, ok := indicators[c.Name]
		if !ok {
			err = errorf(ErrMissingFrequency, "crop %s", c.Name)
			return
		}
		var r Mask
		if r, err = RestrictedContinuous(indicator, base, c); err != nil {
			return
		}
		restricted[c.Name] = r
		if ret, err = Select(ret, Case{When: r, Then: Set(Code{Class: c.Code, Continuous: true})}); err != nil {
			return
		}
	}
	return
}
