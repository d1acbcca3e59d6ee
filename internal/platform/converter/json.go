package converter

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	jsoniter "github.com/json-iterator/go"
)

// 轉換預設值.
const (
	// DefaultDateLayout 日期欄位預設格式.
	DefaultDateLayout = "2006-01-02 15:04:05"
	// DefaultCharset 文字轉換器預設字元集.
	DefaultCharset = "UTF-8"
)

const jsonContentType = "application/json;charset=UTF-8"

// Options 替代 JSON 引擎與文字轉換器的設定.
type Options struct {
	DateLayout string
	Location   *time.Location
	Charset    string
}

func (o Options) withDefaults() Options {
	if o.DateLayout == "" {
		o.DateLayout = DefaultDateLayout
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Charset == "" {
		o.Charset = DefaultCharset
	}
	return o
}

// NewAPI 建立替代的 JSON 引擎.
//
// map 鍵排序輸出，欄位名一律加引號，map 中的 nil 值輸出為 null，
// 實作 fmt.Stringer 的整數列舉輸出為字串，time.Time 依 DateLayout 輸出.
// 不做循環參照偵測，呼叫端須保證資料圖無環.
func NewAPI(opts Options) jsoniter.API {
	opts = opts.withDefaults()
	api := jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()
	api.RegisterExtension(&featureExtension{
		layout:   opts.DateLayout,
		location: opts.Location,
	})
	return api
}

// JSON 以 json-iterator 實作的 JSON 轉換器.
type JSON struct {
	api jsoniter.API
}

// NewJSON 建立 JSON 轉換器.
func NewJSON(opts Options) *JSON {
	return &JSON{api: NewAPI(opts)}
}

// API 回傳底層的 JSON 引擎.
func (c *JSON) API() jsoniter.API { return c.api }

// Marshal 以轉換器的設定序列化 v.
func (c *JSON) Marshal(v any) ([]byte, error) { return c.api.Marshal(v) }

func (c *JSON) Name() string { return "jsoniter" }

func (c *JSON) ContentType() string { return jsonContentType }

func (c *JSON) CanRead(_ any, mediaType string) bool {
	return mediaType == MediaTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// CanWrite 純字串只在客戶端明確要求 JSON 時才由此轉換器寫出.
func (c *JSON) CanWrite(v any, mediaType string) bool {
	if !compatible(mediaType, MediaTypeJSON) {
		return false
	}
	if _, ok := v.(string); ok {
		return mediaType == MediaTypeJSON
	}
	return true
}

func (c *JSON) Read(body io.Reader, _ string, v any) error {
	if err := c.api.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode json body: %w", err)
	}
	if binding.Validator == nil {
		return nil
	}
	return binding.Validator.ValidateStruct(v)
}

func (c *JSON) Write(w http.ResponseWriter, v any) error {
	data, err := c.api.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json body: %w", err)
	}
	w.Header().Set("Content-Type", jsonContentType)
	_, err = w.Write(data)
	return err
}
