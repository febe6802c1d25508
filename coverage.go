package rotsep

import (
	"github.com/wgdzlh/rotsep/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 获取ROI（roiSrid）落在栅格范围内的面积比例
func (g *GdalToolbox) RoiCoverage(roiWkt string, roiSrid int, grid Grid) (ratio float32, err error) {
	extWkt, err := grid.ExtentWkt()
	if err != nil {
		return
	}
	ref, err := g.getSridRef(roiSrid)
	if err != nil {
		return
	}
	tRef, err := g.projRef(grid.Ref.Projection)
	if err != nil {
		return
	}
	var (
		roi    gdal.Geometry
		extent gdal.Geometry
		gc     = []destroyable{tRef}
	)
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	if roi, err = g.parseWKT(roiWkt, ref); err != nil {
		return
	}
	gc = append(gc, roi)
	if err = roi.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	if extent, err = g.parseWKT(extWkt, tRef); err != nil {
		return
	}
	gc = append(gc, extent)
	roiArea := roi.Area()
	if roiArea <= 0 {
		err = ErrInvalidWKT
		return
	}
	inter := roi.Intersection(extent)
	gc = append(gc, inter)
	ratio = float32(inter.Area() / roiArea)
	log.Info(g.logTag+"got roi coverage", zap.Float32("ratio", ratio))
	if ratio == 0 {
		err = ErrRoiOutsideRaster
	} else if ratio < CoverageThreshold {
		log.Warn(g.logTag+"roi extends beyond raster", zap.Float32("ratio", ratio))
	}
	return
}
