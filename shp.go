package rotsep

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wgdzlh/rotsep/log"
	"github.com/wgdzlh/rotsep/utils"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

// 合并shp中字段field取值为value的全部要素（field为空则合并全部），并转到tSrid
func (g *GdalToolbox) parseShp(shp, field, value string, tSrid int) (ret gdal.Geometry, err error) {
	driver := gdal.OGRDriverByName(SHP_DRIVER_NAME)
	ds, ok := driver.Open(shp, 0)
	if !ok {
		err = ErrGdalDriverOpen
		return
	}
	defer ds.Destroy()
	var (
		layer   = ds.LayerByIndex(0)
		srid    int
		feature *gdal.Feature
		idx     = -1
		match   = []string{value}
		gc      []destroyable
	)
	if srid, err = g.getSrid(layer.SpatialReference()); err != nil {
		return
	}
	if field != "" {
		def := layer.Definition()
		if idx = def.FieldIndex(field); idx < 0 {
			gbk, _ := utils.Utf8StrToGbk(field)
			if idx = def.FieldIndex(gbk); idx < 0 {
				err = fmt.Errorf(ErrColumnMissingTemplate, field)
				return
			}
		}
		// 未声明UTF-8编码的shp，属性值可能为GBK
		if gbk, e := utils.Utf8StrToGbk(value); e == nil && gbk != value {
			match = append(match, gbk)
		}
	}
	defer func() {
		for _, v := range gc {
			v.Destroy()
		}
	}()
	ret = gdal.Create(gdal.GT_Polygon)
	n := 0
	for {
		if feature = layer.NextFeature(); feature == nil {
			break
		}
		gc = append(gc, *feature)
		if idx >= 0 && !slices.Contains(match, strings.TrimSpace(feature.FieldAsString(idx))) {
			continue
		}
		gc = append(gc, ret)
		ret = ret.Union(feature.Geometry())
		n++
	}
	log.Info(g.logTag+"union roi features", zap.String("shp", shp), zap.Int("features", n))
	if n == 0 {
		ret.Destroy()
		err = ErrGdalEmptyShp
		return
	}
	if srid != tSrid {
		var tRef gdal.SpatialReference
		if tRef, err = g.getSridRef(tSrid); err == nil {
			if err = ret.TransformTo(tRef); err != nil {
				log.Error(g.logTag+"geo transform failed", zap.Error(err))
			}
		}
		if err != nil {
			ret.Destroy()
		}
	}
	return
}

// RoiFromShapefile unions the matching features of shp (a .shp or a zipped
// shapefile) into one WKT in tSrid.
func (g *GdalToolbox) RoiFromShapefile(shp, field, value string, tSrid int) (wkt string, err error) {
	if strings.HasSuffix(strings.ToLower(shp), FILE_EXT_ZIP) {
		var dir string
		if dir, err = utils.GetUniqSubDir(g.tmpDir); err != nil {
			return
		}
		defer utils.RemoveDir(dir)
		if shp, _, err = utils.GetShpInZip(shp, dir); err != nil {
			log.Error(g.logTag+"no shp in zip", zap.Error(err))
			return
		}
	}
	log.Info(g.logTag+"start roi from shp", zap.String("shp", shp), zap.String("field", field), zap.String("value", value))
	geo, err := g.parseShp(shp, field, value, tSrid)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if geo.IsEmpty() {
		err = ErrGdalEmptyShp
		return
	}
	wkt, err = geo.ToWKT()
	return
}
