package converter

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentStatus int

const (
	paymentPending paymentStatus = iota
	paymentPaid
)

func (s paymentStatus) String() string {
	if s == paymentPaid {
		return "PAID"
	}
	return "PENDING"
}

type payment struct {
	ID     string         `json:"id"`
	Status paymentStatus  `json:"status"`
	PaidAt time.Time      `json:"paidAt"`
	DueAt  *time.Time     `json:"dueAt"`
	SentAt *time.Time     `json:"sentAt,omitempty"`
	Note   *string        `json:"note"`
	Extra  map[string]any `json:"extra"`
}

func utcOptions() Options {
	return Options{Location: time.UTC}
}

func TestJSONSerializationFeatures(t *testing.T) {
	conv := NewJSON(utcOptions())

	paidAt := time.Date(2018, 12, 29, 10, 30, 0, 0, time.UTC)
	due := time.Date(2019, 1, 5, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))
	p := payment{
		ID:     "p-1",
		Status: paymentPaid,
		PaidAt: paidAt,
		Extra:  map[string]any{"zeta": 1, "alpha": nil, "html": "<b>餘額</b>"},
	}

	data, err := conv.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":"p-1","status":"PAID","paidAt":"2018-12-29 10:30:00","dueAt":null,"note":null,"extra":{"alpha":null,"html":"<b>餘額</b>","zeta":1}}`,
		string(data))

	t.Run("日期指標依格式與時區輸出", func(t *testing.T) {
		p.DueAt = &due
		p.SentAt = &paidAt
		p.Extra = nil

		data, err := conv.Marshal(p)
		require.NoError(t, err)
		assert.Equal(t,
			`{"id":"p-1","status":"PAID","paidAt":"2018-12-29 10:30:00","dueAt":"2019-01-05 00:00:00","sentAt":"2018-12-29 10:30:00","note":null,"extra":null}`,
			string(data))

		var back struct {
			DueAt  *time.Time `json:"dueAt"`
			SentAt *time.Time `json:"sentAt"`
		}
		require.NoError(t, conv.API().Unmarshal(data, &back))
		require.NotNil(t, back.DueAt)
		assert.True(t, due.Equal(*back.DueAt))
		require.NotNil(t, back.SentAt)
		assert.True(t, paidAt.Equal(*back.SentAt))
	})
}

func TestJSONSortsNestedMapKeys(t *testing.T) {
	data, err := NewAPI(utcOptions()).Marshal(map[string]any{
		"b": map[string]int{"y": 2, "x": 1},
		"a": []paymentStatus{paymentPending, paymentPaid},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":["PENDING","PAID"],"b":{"x":1,"y":2}}`, string(data))
}

func TestJSONDecodesDates(t *testing.T) {
	conv := NewJSON(utcOptions())

	var p payment
	body := strings.NewReader(`{"id":"p-1","paidAt":"2018-12-29 10:30:00","note":"ok"}`)
	require.NoError(t, conv.Read(body, "application/json", &p))
	assert.Equal(t, time.Date(2018, 12, 29, 10, 30, 0, 0, time.UTC), p.PaidAt)
	require.NotNil(t, p.Note)
	assert.Equal(t, "ok", *p.Note)

	var rfc payment
	require.NoError(t, conv.API().UnmarshalFromString(`{"paidAt":"2018-12-29T10:30:00Z"}`, &rfc))
	assert.True(t, rfc.PaidAt.Equal(p.PaidAt))

	var null payment
	require.NoError(t, conv.API().UnmarshalFromString(`{"paidAt":null}`, &null))
	assert.True(t, null.PaidAt.IsZero())

	var bad payment
	assert.Error(t, conv.API().UnmarshalFromString(`{"paidAt":"yesterday"}`, &bad))
}

func TestJSONReadValidatesBindingTags(t *testing.T) {
	type createRequest struct {
		Name string `json:"name" binding:"required"`
	}

	conv := NewJSON(Options{})

	var ok createRequest
	require.NoError(t, conv.Read(strings.NewReader(`{"name":"demo"}`), "application/json", &ok))
	assert.Equal(t, "demo", ok.Name)

	var missing createRequest
	assert.Error(t, conv.Read(strings.NewReader(`{}`), "application/json", &missing))

	var broken createRequest
	assert.Error(t, conv.Read(strings.NewReader(`{"name":`), "application/json", &broken))
}

func TestJSONWriteSetsContentType(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, NewJSON(Options{}).Write(w, map[string]string{"k": "v"}))
	assert.Equal(t, "application/json;charset=UTF-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"k":"v"}`, w.Body.String())
}
