package rotsep

import (
	"errors"
	"fmt"
)

var (
	ErrGridMisaligned   = errors.New("grids are not the same shape")
	ErrRefMismatch      = errors.New("grids differ in geotransform or projection")
	ErrOverlap          = errors.New("exclusive cases overlap")
	ErrClassOutOfRange  = errors.New("base class outside code headroom")
	ErrAlreadyDrained   = errors.New("code already carries drainage offset")
	ErrMissingFrequency = errors.New("missing crop frequency grid")
	ErrInvalidCode      = errors.New("invalid stacked code")
	ErrEmptyGrid        = errors.New("empty grid")
	ErrInvalidConfig    = errors.New("invalid config")

	ErrGdalDriverCreate = errors.New("gdal driver create err")
	ErrGdalDriverOpen   = errors.New("gdal driver open err")
	ErrGdalEmptyShp     = errors.New("gdal shp is empty")
	ErrVoidSrid         = errors.New("gdal shp with void srid")
	ErrInvalidWKT       = errors.New("invalid WKT")
	ErrInvalidTif       = errors.New("invalid tif")
	ErrWrongTif         = errors.New("wrong tif")
	ErrEmptyTif         = errors.New("empty tif")
	ErrTifReadFailed    = errors.New("tif read failed")
	ErrTifWriteFailed   = errors.New("tif write failed")
	ErrRotatedTransform = errors.New("rotated geotransform not supported")
	ErrRoiOutsideRaster = errors.New("roi does not cover raster")
)

func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
}
