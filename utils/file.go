package utils

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	FILE_EXT_SHP = ".shp"
	FILE_EXT_CPG = ".cpg"

	UTF8  = "UTF8"
	UTF_8 = "UTF-8"
)

var (
	ErrNoShpInZip  = errors.New("no shp in zip")
	ErrZipSlipPath = errors.New("zip entry escapes target dir")
)

func GetUniqSubDir(parentPath string) (path string, err error) {
	path = filepath.Join(parentPath, uuid.NewString())
	err = os.Mkdir(path, os.ModePerm)
	return
}

func RemoveDir(path string) {
	_ = os.RemoveAll(path)
}

func GetFilenameWithoutExt(path string) (name string) {
	name = filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(path))
	return
}

// 在文件名（扩展名前）追加后缀，如 out.tif -> out_tile.tif
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// 解压zip到dstDir，返回解出的文件路径
func Unzip(zipFile, dstDir string) (files []string, err error) {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return
	}
	defer r.Close()
	root := filepath.Clean(dstDir) + string(os.PathSeparator)
	for _, f := range r.File {
		path := filepath.Join(dstDir, f.Name)
		if !strings.HasPrefix(path, root) {
			err = ErrZipSlipPath
			return
		}
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(path, os.ModePerm); err != nil {
				return
			}
			continue
		}
		if err = os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return
		}
		if err = extract(f, path); err != nil {
			return
		}
		files = append(files, path)
	}
	return
}

func extract(f *zip.File, path string) (err error) {
	rc, err := f.Open()
	if err != nil {
		return
	}
	defer rc.Close()
	out, err := os.Create(path)
	if err != nil {
		return
	}
	defer out.Close()
	_, err = io.Copy(out, rc)
	return
}

// 解压zip并找出其中的shp，utf8表示.cpg声明了UTF-8编码
func GetShpInZip(zipFile, dstDir string) (path string, utf8 bool, err error) {
	shpFiles, err := Unzip(zipFile, dstDir)
	if err != nil {
		return
	}
	for _, file := range shpFiles {
		lower := strings.ToLower(file)
		if strings.HasSuffix(lower, FILE_EXT_SHP) {
			path = file
			continue
		}
		if strings.HasSuffix(lower, FILE_EXT_CPG) {
			enc, e := os.ReadFile(file)
			if e == nil && len(enc) > 0 {
				encStr := strings.ToUpper(strings.TrimSpace(string(enc)))
				utf8 = encStr == UTF_8 || encStr == UTF8
			}
		}
	}
	if path == "" {
		err = ErrNoShpInZip
	}
	return
}
