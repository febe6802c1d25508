package utils

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

func B2S(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

func S2B(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// GBK 转 UTF-8
func GbkToUtf8(s []byte) (d []byte, e error) {
	reader := transform.NewReader(bytes.NewReader(s), simplifiedchinese.GBK.NewDecoder())
	d, e = io.ReadAll(reader)
	return
}

// UTF-8 string 转 GBK
func Utf8StrToGbk(s string) (d string, e error) {
	reader := transform.NewReader(strings.NewReader(s), simplifiedchinese.GBK.NewEncoder())
	t, e := io.ReadAll(reader)
	if e != nil {
		return
	}
	d = B2S(t)
	return
}

// GBK string 转 UTF-8
func GbkStrToUtf8(s string) (d string, e error) {
	t, e := GbkToUtf8(S2B(s))
	if e != nil {
		return
	}
	d = B2S(t)
	return
}

func StrToInts(s, sep string) []int {
	var (
		ids  = strings.Split(s, sep)
		rets = make([]int, 0, len(ids))
		i    int
		e    error
	)
	for _, id := range ids {
		i, e = strconv.Atoi(strings.TrimSpace(id))
		if e == nil {
			rets = append(rets, i)
		}
	}
	return rets
}
