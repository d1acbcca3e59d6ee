package converter

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Respond 依 Accept 標頭挑選轉換器寫出 v；找不到時把錯誤交給 c.Errors.
func (l List) Respond(c *gin.Context, code int, v any) {
	conv, err := l.ForWrite(v, c.GetHeader("Accept"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Render(code, converterRender{conv: conv, data: v})
}

// Bind 依 Content-Type 挑選轉換器把請求本文讀入 v.
func (l List) Bind(c *gin.Context, v any) error {
	contentType := c.GetHeader("Content-Type")
	conv, err := l.ForRead(v, contentType)
	if err != nil {
		return err
	}
	return conv.Read(c.Request.Body, contentType, v)
}

// converterRender 讓轉換器符合 gin 的 render.Render.
type converterRender struct {
	conv Converter
	data any
}

func (r converterRender) Render(w http.ResponseWriter) error {
	return r.conv.Write(w, r.data)
}

func (r converterRender) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if len(header["Content-Type"]) == 0 {
		header["Content-Type"] = []string{r.conv.ContentType()}
	}
}
