package converter

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/gin-gonic/gin/render"
)

// Defaults 未經設定時的轉換器清單.
func Defaults() List {
	return List{Bytes{}, DefaultJSON{}}
}

// DefaultJSON gin 內建的 JSON 轉換 (render.JSON / binding.JSON).
type DefaultJSON struct{}

func (DefaultJSON) Name() string { return "gin-json" }

func (DefaultJSON) ContentType() string { return "application/json; charset=utf-8" }

func (DefaultJSON) CanRead(_ any, mediaType string) bool {
	return mediaType == MediaTypeJSON
}

func (DefaultJSON) CanWrite(_ any, mediaType string) bool {
	return compatible(mediaType, MediaTypeJSON)
}

func (DefaultJSON) Read(body io.Reader, _ string, v any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	return binding.JSON.BindBody(data, v)
}

func (DefaultJSON) Write(w http.ResponseWriter, v any) error {
	return render.JSON{Data: v}.Render(w)
}

// Bytes 原樣讀寫 []byte.
type Bytes struct{}

func (Bytes) Name() string { return "bytes" }

func (Bytes) ContentType() string { return MediaTypeOctetStream }

func (Bytes) CanRead(v any, mediaType string) bool {
	_, ok := v.(*[]byte)
	return ok && !strings.HasPrefix(mediaType, "text/")
}

func (Bytes) CanWrite(v any, mediaType string) bool {
	_, ok := v.([]byte)
	return ok && compatible(mediaType, MediaTypeOctetStream)
}

func (Bytes) Read(body io.Reader, _ string, v any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	*v.(*[]byte) = data
	return nil
}

func (b Bytes) Write(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", b.ContentType())
	_, err := w.Write(v.([]byte))
	return err
}
