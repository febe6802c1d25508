package rotsep

import (
	"strconv"
	"strings"
	"sync"

	"github.com/wgdzlh/rotsep/log"

	"github.com/lukeroth/gdal"
	"go.uber.org/zap"
)

type GdalToolbox struct {
	refMap map[int]gdal.SpatialReference
	rLock  sync.Mutex
	tmpDir string
	logTag string
}

// 由GDAL库C语言创建的内存对象，需要手动调用Destroy回收
type destroyable interface {
	Destroy()
}

// 初始化GDAL工具箱，tmpDir为可选的临时目录路径（未提供的话为当前目录）
func NewGdalToolbox(tmpDir ...string) *GdalToolbox {
	g := &GdalToolbox{
		refMap: map[int]gdal.SpatialReference{},
		logTag: "GdalToolbox:",
	}
	if len(tmpDir) > 0 && tmpDir[0] != "" {
		g.tmpDir = tmpDir[0]
	}
	return g
}

// 获取srid对应的坐标系（可复用，故无需回收）
func (g *GdalToolbox) getSridRef(srid int) (ref gdal.SpatialReference, err error) {
	g.rLock.Lock()
	defer g.rLock.Unlock()
	ref, ok := g.refMap[srid]
	if ok {
		return
	}
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromEPSG(srid); err != nil {
		log.Error(g.logTag+"set ref srid failed", zap.Int("srid", srid), zap.Error(err))
		ref.Destroy()
		return
	}
	// 固定为(x,y)即(经度,纬度)/(东,北)次序，避免转换坐标系或转GeoJSON时次序倒置
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	g.refMap[srid] = ref
	return
}

// 由投影WKT创建坐标系，需调用方回收
func (g *GdalToolbox) projRef(proj string) (ref gdal.SpatialReference, err error) {
	ref = gdal.CreateSpatialReference("")
	if err = ref.FromWKT(proj); err != nil {
		log.Error(g.logTag+"parse projection failed", zap.Error(err))
		ref.Destroy()
		err = ErrRefMismatch
		return
	}
	ref.SetAxisMappingStrategy(gdal.OAMS_TraditionalGisOrder)
	return
}

func (g *GdalToolbox) getSrid(sp gdal.SpatialReference) (srid int, err error) {
	wkt, _ := sp.ToWKT()
	rawId, ok := sp.AttrValue("AUTHORITY", 1)
	if !ok {
		if strings.Contains(wkt, "Albers_Conic_Equal_Area") && strings.Contains(wkt, "NAD83") {
			rawId = strconv.Itoa(TARGET_SRID)
		} else {
			log.Error(g.logTag+"void srid", zap.String("wkt", wkt))
			err = ErrVoidSrid
			return
		}
	}
	srid, err = strconv.Atoi(rawId)
	log.Info(g.logTag+"got srid from sp", zap.String("id", rawId))
	return
}

// 投影WKT对应的srid
func (g *GdalToolbox) SridOfProjection(proj string) (srid int, err error) {
	ref, err := g.projRef(proj)
	if err != nil {
		return
	}
	defer ref.Destroy()
	return g.getSrid(ref)
}

// 两个投影WKT是否表示同一坐标系
func (g *GdalToolbox) SameProjection(a, b string) (same bool, err error) {
	if a == b {
		same = true
		return
	}
	ra, err := g.projRef(a)
	if err != nil {
		return
	}
	defer ra.Destroy()
	rb, err := g.projRef(b)
	if err != nil {
		return
	}
	defer rb.Destroy()
	same = ra.IsSame(rb)
	return
}

// Align compares every input's projection with the base grid through GDAL and,
// where they name the same CRS, copies the base's WKT so the pipeline's text
// comparison agrees. Shape and geotransform are left to Pipeline.CheckInputs.
func (g *GdalToolbox) Align(in *Inputs) (err error) {
	base := in.Base.Ref.Projection
	align := func(name string, ref *GeoRef) error {
		if ref.Projection == "" || base == "" {
			return nil
		}
		same, e := g.SameProjection(base, ref.Projection)
		if e != nil {
			return e
		}
		if !same {
			log.Error(g.logTag+"projection differs from base", zap.String("grid", name))
			return errorf(ErrRefMismatch, "%s projection", name)
		}
		ref.Projection = base
		return nil
	}
	for name, freq := range in.Frequency {
		if err = align(name+" frequency", &freq.Ref); err != nil {
			return
		}
		in.Frequency[name] = freq
	}
	err = align("drainage", &in.Drainage.Ref)
	return
}

func (g *GdalToolbox) parseWKT(wkt string, ref gdal.SpatialReference) (ret gdal.Geometry, err error) {
	ret, err = gdal.CreateFromWKT(wkt, ref)
	if err != nil {
		log.Error(g.logTag+"parse wkt failed", zap.Error(err))
		err = ErrInvalidWKT
	}
	return
}

// 转换WKT坐标系
func (g *GdalToolbox) TransformWkt(wkt string, srid, tSrid int) (ret string, err error) {
	if tSrid == srid {
		ret = wkt
		return
	}
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	tRef, err := g.getSridRef(tSrid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	defer geo.Destroy()
	if err = geo.TransformTo(tRef); err != nil {
		log.Error(g.logTag+"geo transform failed", zap.Error(err))
		return
	}
	ret, err = geo.ToWKT()
	return
}

// 检查WKT有效性
func (g *GdalToolbox) CheckWkt(wkt string, srid int) (err error) {
	ref, err := g.getSridRef(srid)
	if err != nil {
		return
	}
	geo, err := g.parseWKT(wkt, ref)
	if err != nil {
		return
	}
	geo.Destroy()
	return
}

// CheckTarget fails when grid is not in srid and warns when its pixel size
// differs from res.
func (g *GdalToolbox) CheckTarget(grid Grid, srid int, res float64) (err error) {
	if grid.Ref.Projection == "" {
		log.Warn(g.logTag + "grid has no projection, skip target check")
		return
	}
	got, err := g.SridOfProjection(grid.Ref.Projection)
	if err != nil {
		return
	}
	if got != srid {
		log.Error(g.logTag+"grid srid differs from target", zap.Int("srid", got), zap.Int("target", srid))
		err = errorf(ErrRefMismatch, "srid %d, want %d", got, srid)
		return
	}
	if x, y := grid.Ref.Resolution(); res > 0 && (x != res || y != res) {
		log.Warn(g.logTag+"grid resolution differs from target", zap.Float64("x", x), zap.Float64("y", y), zap.Float64("target", res))
	}
	return
}
