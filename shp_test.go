package rotsep

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lukeroth/gdal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 写出含两个县界的测试shp（EPSG:4326）
func writeCountyShp(t *testing.T, g *GdalToolbox, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "county.shp")
	ds, ok := gdal.OGRDriverByName(SHP_DRIVER_NAME).Create(path, nil)
	require.True(t, ok)
	ref, err := g.getSridRef(UNIVERSAL_SRID)
	require.NoError(t, err)
	layer := ds.CreateLayer("county", ref, gdal.GT_Polygon, nil)
	fd := gdal.CreateFieldDefinition("NAME", gdal.FT_String)
	require.NoError(t, layer.CreateField(fd, false))
	fd.Destroy()
	for name, span := range map[string][4]float64{
		"Story": {-93.70, -93.23, 41.86, 42.21},
		"Boone": {-94.16, -93.70, 41.86, 42.21},
	} {
		geo, err := gdal.CreateFromWKT(SpanToWkt(span), ref)
		require.NoError(t, err)
		f := layer.Definition().Create()
		f.SetFieldString(0, name)
		require.NoError(t, f.SetGeometry(geo))
		require.NoError(t, layer.Create(f))
		f.Destroy()
		geo.Destroy()
	}
	ds.Destroy()
	return path
}

func zipDir(t *testing.T, dir, out string) {
	t.Helper()
	f, err := os.Create(out)
	require.NoError(t, err)
	defer f.Close()
	w := zip.NewWriter(f)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		src, err := os.Open(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		dst, err := w.Create(e.Name())
		require.NoError(t, err)
		_, err = io.Copy(dst, src)
		src.Close()
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestRoiFromShapefile(t *testing.T) {
	shpDir := t.TempDir()
	g := NewGdalToolbox(t.TempDir())
	shp := writeCountyShp(t, g, shpDir)

	wkt, err := g.RoiFromShapefile(shp, "NAME", "Story", TARGET_SRID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wkt, "POLYGON"))

	all, err := g.RoiFromShapefile(shp, "", "", UNIVERSAL_SRID)
	require.NoError(t, err)
	assert.NotEqual(t, wkt, all)

	_, err = g.RoiFromShapefile(shp, "NAME", "Polk", TARGET_SRID)
	assert.ErrorIs(t, err, ErrGdalEmptyShp)

	_, err = g.RoiFromShapefile(shp, "FIPS", "19169", TARGET_SRID)
	assert.Error(t, err)
}

func TestRoiFromZippedShapefile(t *testing.T) {
	shpDir := t.TempDir()
	g := NewGdalToolbox(t.TempDir())
	writeCountyShp(t, g, shpDir)
	zipped := filepath.Join(t.TempDir(), "county.zip")
	zipDir(t, shpDir, zipped)

	wkt, err := g.ResolveRoi(RoiConfig{Shapefile: zipped, Field: "NAME", Value: "Boone"}, TARGET_SRID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wkt, "POLYGON"))
	_, err = os.Stat(zipped)
	assert.NoError(t, err, "zip must be kept")
}
