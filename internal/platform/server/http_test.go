package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"web-gateway/internal/platform/config"
	"web-gateway/internal/platform/converter"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	converters, err := Converters(&config.Config{
		Codec: config.CodecConfig{TimeZone: "UTC"},
	})
	require.NoError(t, err)
	return Router(converters)
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConvertersFromConfig(t *testing.T) {
	converters, err := Converters(nil)
	require.NoError(t, err)

	_, ok := converters.JSON()
	assert.True(t, ok)

	_, err = Converters(&config.Config{Codec: config.CodecConfig{Charset: "klingon"}})
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), `{"code":0,"message":"成功","data":{"status":`))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestEchoRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	body := `{"id":"o-1","status":"PAID","amount":12.5,"createdAt":"2018-12-29 10:30:00","attributes":{"note":null,"channel":"web"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo/echo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")

	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		`{"code":0,"message":"成功","data":{"id":"o-1","status":"PAID","amount":12.5,"createdAt":"2018-12-29 10:30:00","attributes":{"channel":"web","note":null}}}`,
		w.Body.String())
}

func TestEchoValidationFailureUsesEnvelope(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo/echo", strings.NewReader(`{"amount":1}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"code":9999`)
}

func TestTextUsesStringConverter(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo/text", strings.NewReader("中文"))
	req.Header.Set("Content-Type", "text/plain")

	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "收到：中文", w.Body.String())
}

func TestUnsupportedMediaTypeUsesEnvelope(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/demo/echo", strings.NewReader("<order/>"))
	req.Header.Set("Content-Type", "application/xml")

	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported media type")
}

func TestAppErrorScenario(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/demo/app-error?reason=insufficient+balance", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"code":1000,"message":"应用错误，详细错误原因：insufficient balance"}`, w.Body.String())
}

func TestNilPointerScenario(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/demo/panic?id=missing", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `"code":9999`)
	assert.Contains(t, body, "其他错误，详细错误原因：runtime.")
	assert.Contains(t, body, "nil pointer dereference")
}

func TestRouterFallsBackWithoutReplacementJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := Router(converter.Defaults())

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/demo/app-error", nil))
	assert.Equal(t, `{"code":1000,"message":"应用错误，详细错误原因：insufficient balance"}`, w.Body.String())
}
