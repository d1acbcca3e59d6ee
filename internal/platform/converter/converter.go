// Package converter 管理 HTTP 本文轉換器的有序清單.
//
// 清單順序即優先順序：寫出回應時依 Accept 標頭逐一比對，第一個可寫出的轉換器勝出；
// 讀取請求時依 Content-Type 比對.
package converter

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// 常用媒體類型.
const (
	MediaTypeJSON        = "application/json"
	MediaTypeText        = "text/plain"
	MediaTypeOctetStream = "application/octet-stream"
	mediaTypeAll         = "*/*"
)

var (
	// ErrNotAcceptable 沒有轉換器能以客戶端接受的類型寫出回應.
	ErrNotAcceptable = errors.New("converter: not acceptable")
	// ErrUnsupportedMediaType 沒有轉換器能讀取請求本文.
	ErrUnsupportedMediaType = errors.New("converter: unsupported media type")
)

// Converter 序列化/反序列化 HTTP 本文.
type Converter interface {
	// Name 轉換器名稱，用於日誌.
	Name() string
	// ContentType 寫出回應時使用的 Content-Type.
	ContentType() string
	// CanRead 判斷能否把 mediaType 的本文讀入 v.
	CanRead(v any, mediaType string) bool
	// CanWrite 判斷能否把 v 以 mediaType 寫出；mediaType 可為 media range.
	CanWrite(v any, mediaType string) bool
	Read(body io.Reader, contentType string, v any) error
	Write(w http.ResponseWriter, v any) error
}

// List 有序的轉換器清單.
type List []Converter

// RemoveIf 回傳移除符合條件的轉換器後的新清單，原清單不變.
func (l List) RemoveIf(pred func(Converter) bool) List {
	out := make(List, 0, len(l))
	for _, c := range l {
		if !pred(c) {
			out = append(out, c)
		}
	}
	return out
}

// ForWrite 依 Accept 標頭挑選可寫出 v 的轉換器.
func (l List) ForWrite(v any, accept string) (Converter, error) {
	for _, mediaRange := range acceptedTypes(accept) {
		for _, c := range l {
			if c.CanWrite(v, mediaRange) {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %T as %q", ErrNotAcceptable, v, accept)
}

// ForRead 依 Content-Type 挑選可讀取請求本文的轉換器.
func (l List) ForRead(v any, contentType string) (Converter, error) {
	mediaType, _ := parseMediaType(contentType)
	for _, c := range l {
		if c.CanRead(v, mediaType) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q into %T", ErrUnsupportedMediaType, contentType, v)
}

// parseMediaType 解析 Content-Type，解析失敗時退回分號前的部分.
func parseMediaType(s string) (string, map[string]string) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	mediaType, params, err := mime.ParseMediaType(s)
	if err != nil {
		before, _, _ := strings.Cut(s, ";")
		return strings.ToLower(strings.TrimSpace(before)), nil
	}
	return mediaType, params
}

// compatible 判斷 media range 是否涵蓋具體的 mediaType.
func compatible(mediaRange, mediaType string) bool {
	if mediaRange == "" || mediaRange == mediaTypeAll {
		return true
	}
	rangeType, rangeSub, _ := strings.Cut(mediaRange, "/")
	typ, sub, _ := strings.Cut(mediaType, "/")
	if rangeType != typ {
		return false
	}
	return rangeSub == "*" || rangeSub == sub
}

// acceptedTypes 依 q 值由高到低排列 Accept 標頭中的 media range.
func acceptedTypes(accept string) []string {
	if strings.TrimSpace(accept) == "" {
		return []string{mediaTypeAll}
	}

	type weighted struct {
		mediaType string
		q         float64
	}
	var ranges []weighted
	for _, part := range strings.Split(accept, ",") {
		mediaType, params := parseMediaType(part)
		if mediaType == "" {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		if q <= 0 {
			continue
		}
		ranges = append(ranges, weighted{mediaType: mediaType, q: q})
	}
	sort.SliceStable(ranges, func(i, j int) bool { return ranges[i].q > ranges[j].q })

	out := make([]string, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, r.mediaType)
	}
	return out
}

// JSON 回傳清單中第一個替代 JSON 轉換器.
func (l List) JSON() (*JSON, bool) {
	for _, c := range l {
		if conv, ok := c.(*JSON); ok {
			return conv, true
		}
	}
	return nil, false
}
