package converter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// String 讀寫純文字本文並處理字元集.
//
// 讀取時優先使用請求 Content-Type 的 charset 參數，否則使用轉換器的字元集；
// 寫出時一律以轉換器的字元集編碼.
type String struct {
	charset string
	enc     encoding.Encoding
}

// NewString 建立指定字元集的文字轉換器.
func NewString(charset string) (*String, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	return &String{charset: strings.ToUpper(charset), enc: enc}, nil
}

// Charset 回傳轉換器的字元集名稱.
func (c *String) Charset() string { return c.charset }

func (c *String) Name() string { return "string" }

func (c *String) ContentType() string { return MediaTypeText + ";charset=" + c.charset }

func (c *String) CanRead(v any, mediaType string) bool {
	_, ok := v.(*string)
	return ok && (mediaType == "" || strings.HasPrefix(mediaType, "text/"))
}

func (c *String) CanWrite(v any, mediaType string) bool {
	_, ok := v.(string)
	return ok && compatible(mediaType, MediaTypeText)
}

func (c *String) Read(body io.Reader, contentType string, v any) error {
	enc := c.enc
	if _, params := parseMediaType(contentType); params["charset"] != "" {
		requested, err := htmlindex.Get(params["charset"])
		if err != nil {
			return fmt.Errorf("%w: charset %q", ErrUnsupportedMediaType, params["charset"])
		}
		enc = requested
	}

	data, err := io.ReadAll(transform.NewReader(body, enc.NewDecoder()))
	if err != nil {
		return fmt.Errorf("decode text body: %w", err)
	}
	*v.(*string) = string(data)
	return nil
}

func (c *String) Write(w http.ResponseWriter, v any) error {
	encoded, err := c.enc.NewEncoder().String(v.(string))
	if err != nil {
		return fmt.Errorf("encode text body as %s: %w", c.charset, err)
	}
	w.Header().Set("Content-Type", c.ContentType())
	_, err = io.WriteString(w, encoded)
	return err
}
