package rotsep

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wgdzlh/rotsep/log"
	"github.com/wgdzlh/rotsep/utils"

	"github.com/google/uuid"
	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

func isIntegerType(dt gdal.DataType) bool {
	switch dt {
	case gdal.Byte, gdal.UInt16, gdal.Int16, gdal.UInt32, gdal.Int32:
		return true
	}
	return false
}

// 读取单波段整型Tif（第一波段）
func (g *GdalToolbox) ReadGrid(tif string) (ret Grid, err error) {
	sds, err := gdal.Open(tif, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	if bc := sds.RasterCount(); bc < 1 {
		log.Error(g.logTag+"tif has no band", zap.String("tif", tif))
		err = ErrEmptyTif
		return
	}
	band := sds.RasterBand(1)
	dt := band.RasterDataType()
	x := sds.RasterXSize()
	y := sds.RasterYSize()
	if !isIntegerType(dt) {
		log.Error(g.logTag+"tif is not integer typed", zap.String("tif", tif), zap.String("dataType", dt.Name()))
		err = ErrWrongTif
		return
	}
	log.Info(g.logTag+"read tif", zap.String("tif", tif), zap.String("dt", dt.Name()), zap.Int("width", x), zap.Int("height", y))
	ret = NewGrid(x, y)
	if err = band.IO(gdal.Read, 0, 0, x, y, ret.Pix, x, y, 0, 0); err != nil {
		log.Error(g.logTag+"read tif band failed", zap.String("tif", tif), zap.Error(err))
		err = ErrTifReadFailed
		return
	}
	if nd, ok := band.NoDataValue(); ok {
		ret.NoData = int32(nd)
		ret.HasNoData = true
	}
	ret.Ref = GeoRef{Transform: sds.GeoTransform(), Projection: sds.Projection()}
	return
}

// 写出Int16单波段Tif（LZW压缩）
func (g *GdalToolbox) WriteGrid(grid Grid, out string) (err error) {
	if grid.Len() == 0 {
		err = ErrEmptyGrid
		return
	}
	driver, err := gdal.GetDriverByName(GTIFF_DRIVER_NAME)
	if err != nil {
		log.Error(g.logTag+"get tif driver failed", zap.Error(err))
		err = ErrGdalDriverCreate
		return
	}
	ods := driver.Create(out, grid.Cols, grid.Rows, 1, gdal.Int16, []string{"COMPRESS=LZW", "TILED=YES"})
	defer ods.Close()
	if !grid.Ref.IsZero() {
		if err = ods.SetGeoTransform(grid.Ref.Transform); err != nil {
			log.Error(g.logTag+"set geotransform failed", zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
		if err = ods.SetProjection(grid.Ref.Projection); err != nil {
			log.Error(g.logTag+"set projection failed", zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
	}
	band := ods.RasterBand(1)
	if grid.HasNoData {
		if err = band.SetNoDataValue(float64(grid.NoData)); err != nil {
			log.Error(g.logTag+"set nodata failed", zap.Error(err))
			err = ErrTifWriteFailed
			return
		}
	}
	if err = band.IO(gdal.Write, 0, 0, grid.Cols, grid.Rows, grid.Pix, grid.Cols, grid.Rows, 0, 0); err != nil {
		log.Error(g.logTag+"write tif band failed", zap.String("out", out), zap.Error(err))
		err = ErrTifWriteFailed
		return
	}
	log.Info(g.logTag+"wrote tif", zap.String("out", out), zap.Int("width", grid.Cols), zap.Int("height", grid.Rows))
	return
}

// WarpToReference resamples src with nearest neighbour onto ref's CRS,
// extent and pixel grid, so the drainage map lines up with the base grid.
// Pixels outside src or masked in src come back as 0.
func (g *GdalToolbox) WarpToReference(src string, ref Grid) (ret Grid, err error) {
	span, err := ExtentOf(ref.Ref, ref.Cols, ref.Rows)
	if err != nil {
		return
	}
	sds, err := gdal.Open(src, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", src), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	tmp := filepath.Join(g.tmpDir, fmt.Sprintf(TMP_WARPED, uuid.NewString()))
	defer os.Remove(tmp)
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	opts := []string{
		"-t_srs", ref.Ref.Projection,
		"-te", f(span[0]), f(span[2]), f(span[1]), f(span[3]),
		"-ts", strconv.Itoa(ref.Cols), strconv.Itoa(ref.Rows),
		"-r", "near",
		"-dstnodata", "0",
		"-overwrite",
	}
	log.Info(g.logTag+"warp to reference", zap.String("src", src), zap.Int("width", ref.Cols), zap.Int("height", ref.Rows))
	ods, err := gdal.Warp(tmp, nil, []gdal.Dataset{sds}, opts)
	if err != nil {
		log.Error(g.logTag+"failed to warp raster", zap.Error(err))
		return
	}
	ods.Close()
	if ret, err = g.ReadGrid(tmp); err != nil {
		return
	}
	ret.Ref = ref.Ref
	return
}

// ClipToRoi crops tif to the ROI polygon (given in roiSrid) and writes out.
// The cutline goes through a temporary GeoJSON in EPSG:4326; the raster keeps
// its own CRS.
func (g *GdalToolbox) ClipToRoi(tif, roiWkt string, roiSrid int, out string) (err error) {
	ref, err := g.getSridRef(roiSrid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(UNIVERSAL_SRID)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(roiWkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	if geo.IsEmpty() {
		err = ErrRoiOutsideRaster
		return
	}
	tmpGeoJson := filepath.Join(g.tmpDir, fmt.Sprintf(TMP_GEOJSON, uuid.NewString()))
	defer os.Remove(tmpGeoJson)
	if err = os.WriteFile(tmpGeoJson, utils.S2B(geo.ToJSON()), os.ModePerm); err != nil {
		return
	}
	sds, err := gdal.Open(tif, gdal.ReadOnly)
	if err != nil {
		log.Error(g.logTag+"open tif failed", zap.String("tif", tif), zap.Error(err))
		err = ErrInvalidTif
		return
	}
	defer sds.Close()
	opts := []string{"-cutline", tmpGeoJson, "-crop_to_cutline", "-overwrite", "-dstnodata", "0", "-co", "COMPRESS=LZW"}
	log.Info(g.logTag+"clip raster to roi", zap.String("tif", tif), zap.String("out", out))
	ods, err := gdal.Warp(out, nil, []gdal.Dataset{sds}, opts)
	if err != nil {
		log.Error(g.logTag+"failed to clip raster", zap.Error(err))
		return
	}
	ods.Close()
	return
}
