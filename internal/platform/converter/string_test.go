package converter

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestStringReadUsesRequestCharset(t *testing.T) {
	conv, err := NewString("UTF-8")
	require.NoError(t, err)

	gbk, err := simplifiedchinese.GBK.NewEncoder().String("中文不乱码")
	require.NoError(t, err)

	var got string
	require.NoError(t, conv.Read(bytes.NewReader([]byte(gbk)), "text/plain; charset=GBK", &got))
	assert.Equal(t, "中文不乱码", got)

	var utf string
	require.NoError(t, conv.Read(bytes.NewReader([]byte("中文")), "text/plain", &utf))
	assert.Equal(t, "中文", utf)
}

func TestStringReadRejectsUnknownCharset(t *testing.T) {
	conv, err := NewString("UTF-8")
	require.NoError(t, err)

	var got string
	err = conv.Read(bytes.NewReader([]byte("x")), "text/plain; charset=klingon", &got)
	assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
}

func TestStringWrite(t *testing.T) {
	conv, err := NewString("utf-8")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, conv.Write(w, "你好"))
	assert.Equal(t, "text/plain;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "你好", w.Body.String())
}
