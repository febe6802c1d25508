package rotsep

// 连作年数区间（闭区间）
type Band struct {
	Min int32
	Max int32
}

func (b Band) Contains(v int32) bool {
	return v >= b.Min && v <= b.Max
}

// ContinuousIndicator marks pixels whose crop frequency falls inside band.
// No-data pixels are 0.
func ContinuousIndicator(freq Grid, band Band) Mask {
	m := NewMask(freq.Cols, freq.Rows)
	for i := range freq.Pix {
		if freq.Valid(i) && band.Contains(freq.Pix[i]) {
			m.Bits[i] = 1
		}
	}
	return m
}

// 各作物连作掩膜，键为作物名
func ContinuousIndicators(freqs map[string]Grid, crops []Crop, band Band) (ret map[string]Mask, err error) {
	ret = make(map[string]Mask, len(crops))
	for _, c := range crops {
		freq, ok := freqs[c.Name]
		if !ok {
			err = errorf(ErrMissingFrequency, "crop %s", c.Name)
			return
		}
		ret[c.Name] = ContinuousIndicator(freq, band)
	}
	return
}
