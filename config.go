package rotsep

const (
	CROP_WHEAT    = "wheat"
	CROP_COTTON   = "cotton"
	CROP_SOYBEANS = "soybeans"
	CROP_CORN     = "corn"

	CODE_CORN     int32 = 1
	CODE_COTTON   int32 = 2
	CODE_SOYBEANS int32 = 5
	CODE_WHEAT    int32 = 22

	// 连作与暗管排水编码偏移
	CONTINUOUS_OFFSET int32 = 500
	DRAINAGE_OFFSET   int32 = 1000

	// 2008-2024共17年中出现15~17年视为连作
	FREQ_FIRST_YEAR      = 2008
	FREQ_LAST_YEAR       = 2024
	CONTINUOUS_MIN_YEARS = 15
	CONTINUOUS_MAX_YEARS = 17

	OUTPUT_NODATA int32 = 0

	DEFAULT_TILE_ROWS = 256

	TARGET_SRID       = 5070
	TARGET_RESOLUTION = 30.0
	UNIVERSAL_SRID    = 4326

	GTIFF_DRIVER_NAME = "GTiff"
	SHP_DRIVER_NAME   = "ESRI Shapefile"
	FILE_EXT_TIF      = ".tif"
	FILE_EXT_ZIP      = ".zip"

	TMP_GEOJSON   = "roi_%s.json"
	TMP_WARPED    = "warped_%s.tif"
	SUFFIX_TILE   = "_tile"
	SUFFIX_NOTILE = "_nontile"
	SUFFIX_CLIP   = "_clip"

	GEO_TRANSFORM_TOLERANCE = 1e-6
	CoverageThreshold       = 0.9999

	ErrColumnMissingTemplate = `roi shapefile missing field [%s]`
)

var (
	WheatClasses    = []int32{22, 23, 24, 30, 230, 234, 236}
	CottonClasses   = []int32{2, 232}
	CornClasses     = []int32{1, 12, 13, 226, 228, 237}
	SoybeansClasses = []int32{5, 240, 254}

	// 可能铺设暗管排水的地类
	TileRelevantClasses = []int32{
		// 中耕作物
		1, 2, 3, 4, 5, 6, 10, 11, 12, 13,
		// 小粒谷物
		21, 22, 23, 24, 25, 27, 28, 29, 30,
		// 油料及特种谷物
		31, 32, 33, 34, 35, 38, 39,
		// 饲草及牧草
		36, 37, 176,
		// 块根作物等
		14, 41, 42, 43, 44, 205, 206, 208,
		// 蔬菜、瓜类、水果
		45, 46, 47, 48, 49, 50, 51, 52, 53, 54,
		55, 56, 57, 58, 59, 60, 61,
		// 一年两熟
		26, 225, 226, 228, 230, 231, 232, 233,
		234, 235, 236, 237, 238, 239, 240, 241, 254,
		// 果园及多年生
		66, 67, 68, 69, 72, 74, 75, 76, 77, 204, 207, 209, 210, 211,
		212, 213, 214, 215, 216, 217, 218, 219, 220, 221, 222, 223,
		224, 227, 229, 242, 243, 244, 245, 246, 247, 248, 249, 250,
	}

	ClassNames = map[int32]string{
		1:   "Corn",
		2:   "Cotton",
		5:   "Soybeans",
		22:  "Durum Wheat",
		26:  "Dbl Crop WinWht/Soybeans",
		61:  "Fallow/Idle Cropland",
		111: "Open Water",
		225: "Dbl Crop WinWht/Corn",
		238: "Dbl Crop WinWht/Cotton",
		239: "Dbl Crop Soybeans/Cotton",
		241: "Dbl Crop Corn/Soybeans",
	}
)

// 单作物定义
type Crop struct {
	Name    string
	Code    int32
	Classes ClassSet
}

// 一年两熟地类及其两种作物
type DoubleCrop struct {
	Class  int32
	First  Crop
	Second Crop
}

// 单作物编码顺序：小麦、棉花、大豆、玉米
func DefaultCrops() []Crop {
	return []Crop{
		{Name: CROP_WHEAT, Code: CODE_WHEAT, Classes: NewClassSet(WheatClasses...)},
		{Name: CROP_COTTON, Code: CODE_COTTON, Classes: NewClassSet(CottonClasses...)},
		{Name: CROP_SOYBEANS, Code: CODE_SOYBEANS, Classes: NewClassSet(SoybeansClasses...)},
		{Name: CROP_CORN, Code: CODE_CORN, Classes: NewClassSet(CornClasses...)},
	}
}

func DefaultDoubleCrops() []DoubleCrop {
	crops := map[string]Crop{}
	for _, c := range DefaultCrops() {
		crops[c.Name] = c
	}
	return []DoubleCrop{
		{Class: 26, First: crops[CROP_WHEAT], Second: crops[CROP_SOYBEANS]},
		{Class: 225, First: crops[CROP_WHEAT], Second: crops[CROP_CORN]},
		{Class: 238, First: crops[CROP_WHEAT], Second: crops[CROP_COTTON]},
		{Class: 239, First: crops[CROP_SOYBEANS], Second: crops[CROP_COTTON]},
		{Class: 241, First: crops[CROP_CORN], Second: crops[CROP_SOYBEANS]},
	}
}

func DefaultBand() Band {
	return Band{Min: CONTINUOUS_MIN_YEARS, Max: CONTINUOUS_MAX_YEARS}
}
