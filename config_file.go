package rotsep

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run description (YAML).
type Config struct {
	Inputs InputConfig `yaml:"inputs"`
	Output string      `yaml:"output"`

	// 可选：裁剪区域，结果另存为 <output>_clip.tif
	Roi RoiConfig `yaml:"roi"`

	// 导出坐标系与分辨率，仅用于校验基础分类栅格
	Srid       int     `yaml:"srid"`
	Resolution float64 `yaml:"resolution"`

	Continuous BandConfig `yaml:"continuous"`
	Workers    int        `yaml:"workers"`
	TileRows   int        `yaml:"tile_rows"`

	// 暗管排水栅格先重投影到基础分类栅格
	WarpDrainage bool `yaml:"warp_drainage"`

	// 另存暗管/非暗管两个视图
	SplitViews bool `yaml:"split_views"`

	Ledger string    `yaml:"ledger"`
	Chart  string    `yaml:"chart"`
	TmpDir string    `yaml:"tmp_dir"`
	Log    LogConfig `yaml:"log"`
}

type InputConfig struct {
	BaseClass string            `yaml:"base_class"`
	Frequency map[string]string `yaml:"frequency"`
	Drainage  string            `yaml:"drainage"`
}

// 三选一：WKT、范围[minX,maxX,minY,maxY]或shp（可为zip）
type RoiConfig struct {
	Wkt       string    `yaml:"wkt"`
	Bbox      []float64 `yaml:"bbox"`
	Shapefile string    `yaml:"shapefile"`
	Field     string    `yaml:"field"`
	Value     string    `yaml:"value"`
	Srid      int       `yaml:"srid"`
}

type BandConfig struct {
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Srid:       TARGET_SRID,
		Resolution: TARGET_RESOLUTION,
		Continuous: BandConfig{Min: CONTINUOUS_MIN_YEARS, Max: CONTINUOUS_MAX_YEARS},
		TileRows:   DEFAULT_TILE_ROWS,
		Log:        LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates it.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(raw)
}

func ParseConfig(raw []byte) (*Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, errorf(ErrInvalidConfig, "%v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (r RoiConfig) IsSet() bool {
	return r.Wkt != "" || len(r.Bbox) > 0 || r.Shapefile != ""
}

func (c *Config) Validate() error {
	if c.Inputs.BaseClass == "" {
		return errorf(ErrInvalidConfig, "inputs.base_class is required")
	}
	if c.Inputs.Drainage == "" {
		return errorf(ErrInvalidConfig, "inputs.drainage is required")
	}
	for _, crop := range DefaultCrops() {
		if c.Inputs.Frequency[crop.Name] == "" {
			return errorf(ErrInvalidConfig, "inputs.frequency.%s is required", crop.Name)
		}
	}
	if c.Output == "" {
		return errorf(ErrInvalidConfig, "output is required")
	}
	if c.Continuous.Min > c.Continuous.Max {
		return errorf(ErrInvalidConfig, "continuous band [%d,%d]", c.Continuous.Min, c.Continuous.Max)
	}
	if c.Continuous.Max >= CONTINUOUS_OFFSET {
		return errorf(ErrInvalidConfig, "continuous.max %d", c.Continuous.Max)
	}
	if c.Workers < 0 || c.TileRows < 0 {
		return errorf(ErrInvalidConfig, "workers and tile_rows must not be negative")
	}
	n := 0
	if c.Roi.Wkt != "" {
		n++
	}
	if len(c.Roi.Bbox) > 0 {
		if len(c.Roi.Bbox) != 4 {
			return errorf(ErrInvalidConfig, "roi.bbox needs 4 numbers, got %d", len(c.Roi.Bbox))
		}
		n++
	}
	if c.Roi.Shapefile != "" {
		n++
	}
	if n > 1 {
		return errorf(ErrInvalidConfig, "roi takes one of wkt, bbox, shapefile")
	}
	return nil
}

func (c *Config) PipelineOptions() []Option {
	return []Option{
		WithBand(Band{Min: c.Continuous.Min, Max: c.Continuous.Max}),
		WithWorkers(c.Workers),
		WithTileRows(c.TileRows),
	}
}

// ROI所用srid，未指定时与导出坐标系一致
func (r RoiConfig) SridOr(def int) int {
	if r.Srid > 0 {
		return r.Srid
	}
	return def
}

// ResolveRoi turns the configured ROI into a WKT in srid. An unset ROI gives "".
func (g *GdalToolbox) ResolveRoi(r RoiConfig, srid int) (wkt string, err error) {
	switch {
	case r.Wkt != "":
		if err = g.CheckWkt(r.Wkt, srid); err != nil {
			return
		}
		wkt = r.Wkt
	case len(r.Bbox) == 4:
		wkt = SpanToWkt([4]float64{r.Bbox[0], r.Bbox[1], r.Bbox[2], r.Bbox[3]})
	case r.Shapefile != "":
		wkt, err = g.RoiFromShapefile(r.Shapefile, r.Field, r.Value, srid)
	}
	return
}
