package rotsep

import (
	"fmt"
	"math"
)

func PointsToWkt(x1, x2, y1, y2 float64) string {
	return fmt.Sprintf("POLYGON((%[1]f %[3]f, %[1]f %[4]f, %[2]f %[4]f, %[2]f %[3]f, %[1]f %[3]f))", x1, x2, y1, y2)
}

// span为[minX,maxX,minY,maxY]
func SpanToWkt(span [4]float64) string {
	return PointsToWkt(span[0], span[1], span[2], span[3])
}

// 北向上栅格的范围[minX,maxX,minY,maxY]
func ExtentOf(ref GeoRef, cols, rows int) (span [4]float64, err error) {
	t := ref.Transform
	if t[2] != 0 || t[4] != 0 {
		err = ErrRotatedTransform
		return
	}
	x0, x1 := t[0], t[0]+float64(cols)*t[1]
	y0, y1 := t[3], t[3]+float64(rows)*t[5]
	span = [4]float64{math.Min(x0, x1), math.Max(x0, x1), math.Min(y0, y1), math.Max(y0, y1)}
	return
}

// 栅格范围WKT（栅格自身坐标系）
func (g Grid) ExtentWkt() (wkt string, err error) {
	span, err := ExtentOf(g.Ref, g.Cols, g.Rows)
	if err != nil {
		return
	}
	wkt = SpanToWkt(span)
	return
}

// 像元大小
func (r GeoRef) Resolution() (x, y float64) {
	return math.Abs(r.Transform[1]), math.Abs(r.Transform[5])
}
