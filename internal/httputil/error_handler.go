package httputil

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"

	"web-gateway/internal/apperror"
	"web-gateway/internal/platform/logger"
	"web-gateway/internal/platform/middleware"

	"github.com/gin-gonic/gin"
)

// ContentTypeJSON 錯誤回應固定使用的 Content-Type.
const ContentTypeJSON = "application/json;charset=UTF-8"

// Marshaler 序列化回應封包的 JSON 引擎.
type Marshaler interface {
	Marshal(v interface{}) ([]byte, error)
}

// Resolve 將錯誤歸類並建立回應封包.
func Resolve(err error) *Response {
	if appErr, ok := apperror.As(err); ok {
		return NewResponse(CodeAppError, CodeAppError.WithDetail(appErr.Message))
	}
	return NewResponse(CodeOtherError, CodeOtherError.WithDetail(describe(err)))
}

// describe 錯誤的字串表示，包含型別與訊息
func describe(err error) string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T: %s", err, err.Error())
}

// WriteError 將錯誤以統一封包寫入回應.
//
// HTTP 狀態一律為 200，客戶端須依封包的 code 判斷成敗.
// 寫入失敗（例如客戶端已斷線）只記錄日誌，不再往上拋.
func WriteError(ctx context.Context, w http.ResponseWriter, m Marshaler, err error) {
	body, mErr := m.Marshal(Resolve(err))
	if mErr != nil {
		logger.Error(ctx, fmt.Sprintf("序列化錯誤回應失敗: %v", mErr), logger.WithAction("write_error_response"))
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, wErr := w.Write(body); wErr != nil {
		logger.Error(ctx, fmt.Sprintf("寫入錯誤回應失敗: %v", wErr), logger.WithAction("write_error_response"))
	}
}

// ExceptionResolver 全域錯誤處理中間件.
//
// 處理鏈中的 panic 與 c.Errors 最後一個錯誤都會轉成統一封包寫出，之後中止處理鏈.
// http.ErrAbortHandler 照原樣重新 panic，交給 net/http 中斷連線.
//
// 處理器回報錯誤用 c.Error；c.AbortWithError 也可以，狀態碼只會被記下，
// 不會先送出，最後仍以 200 寫出封包. 已寫出本文的回應則無法再改寫.
func ExceptionResolver(m Marshaler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = deferredHeaderWriter{ResponseWriter: c.Writer}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			resolve(c, m, recoveredError(rec), string(debug.Stack()))
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		resolve(c, m, c.Errors.Last().Err, "")
	}
}

// deferredHeaderWriter 延後送出狀態列，直到第一次寫入本文.
// 處理鏈結束後仍未寫出的狀態由 gin 送出.
type deferredHeaderWriter struct {
	gin.ResponseWriter
}

func (w deferredHeaderWriter) WriteHeaderNow() {}

func recoveredError(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("%v", rec)
}

func resolve(c *gin.Context, m Marshaler, err error, stack string) {
	ctx := c.Request.Context()

	details := map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
	}
	if stack != "" {
		details["stack"] = stack
	}
	logger.Error(ctx, fmt.Sprintf("API Error: %v", err),
		logger.WithAction("resolve_error"),
		logger.WithDetails(details),
		logger.WithLabels(map[string]string{"error_code": strconv.Itoa(Resolve(err).Code)}))

	if c.Writer.Written() {
		logger.Warningf(ctx, "回應已送出 (status=%d)，略過錯誤封包", c.Writer.Status())
		c.Abort()
		return
	}

	WriteError(ctx, c.Writer, m, err)
	c.Abort()
}
