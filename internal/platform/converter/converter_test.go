package converter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configured(t *testing.T) List {
	t.Helper()
	list, err := Configure(Defaults(), Options{})
	require.NoError(t, err)
	return list
}

func TestForWriteNegotiation(t *testing.T) {
	list := configured(t)

	tests := []struct {
		name   string
		value  any
		accept string
		want   string
	}{
		{"結構預設 JSON", payment{}, "", "jsoniter"},
		{"萬用類型", payment{}, "*/*", "jsoniter"},
		{"字串預設文字", "hello", "", "string"},
		{"字串明確要求 JSON", "hello", "application/json", "jsoniter"},
		{"位元組", []byte("raw"), "", "bytes"},
		{"依 q 值排序", "hello", "application/json;q=0.5, text/plain", "string"},
		{"text 萬用子類型", "hello", "text/*", "string"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conv, err := list.ForWrite(tc.value, tc.accept)
			require.NoError(t, err)
			assert.Equal(t, tc.want, conv.Name())
		})
	}
}

func TestForWriteNotAcceptable(t *testing.T) {
	_, err := configured(t).ForWrite(payment{}, "application/xml")
	assert.True(t, errors.Is(err, ErrNotAcceptable))
}

func TestForRead(t *testing.T) {
	list := configured(t)

	var p payment
	conv, err := list.ForRead(&p, "application/json; charset=UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "jsoniter", conv.Name())

	var s string
	conv, err = list.ForRead(&s, "text/plain;charset=UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "string", conv.Name())

	_, err = list.ForRead(&p, "application/xml")
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
}

func TestRespondAndBindThroughGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	list := configured(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"p-9"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payment
	require.NoError(t, list.Bind(c, &p))
	assert.Equal(t, "p-9", p.ID)

	list.Respond(c, http.StatusCreated, map[string]any{"id": p.ID, "note": nil})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":"p-9","note":null}`, w.Body.String())
}

func TestRespondRecordsNotAcceptable(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept", "application/xml")

	configured(t).Respond(c, http.StatusOK, payment{})
	require.Len(t, c.Errors, 1)
	assert.True(t, errors.Is(c.Errors.Last().Err, ErrNotAcceptable))
}
