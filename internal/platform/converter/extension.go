package converter

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

var (
	timeType          = reflect.TypeOf(time.Time{})
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	jsonMarshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// featureExtension 日期格式與列舉字串化.
type featureExtension struct {
	jsoniter.DummyExtension
	layout   string
	location *time.Location
}

func (e *featureExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	t := typ.Type1()
	if t == timeType {
		return &dateCodec{layout: e.layout, location: e.location}
	}
	// *time.Time 的 MarshalJSON 會繞過日期格式
	if t.Kind() == reflect.Ptr && t.Elem() == timeType {
		return &datePtrEncoder{date: &dateCodec{layout: e.layout, location: e.location}}
	}
	if isEnum(t) {
		return &enumEncoder{typ: typ}
	}
	return nil
}

func (e *featureExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Type1() == timeType {
		return &dateCodec{layout: e.layout, location: e.location}
	}
	return nil
}

// isEnum 具名整數型別且以值接收者實作 String，自訂 Marshaler 優先.
func isEnum(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return false
	}
	if t.PkgPath() == "" {
		return false
	}
	if t.Implements(jsonMarshalerType) || t.Implements(textMarshalerType) {
		return false
	}
	return t.Implements(stringerType)
}

type dateCodec struct {
	layout   string
	location *time.Location
}

func (c *dateCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return (*time.Time)(ptr).IsZero()
}

func (c *dateCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*time.Time)(ptr).In(c.location).Format(c.layout))
}

func (c *dateCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.ReadNil()
		*(*time.Time)(ptr) = time.Time{}
		return
	}

	raw := iter.ReadString()
	if iter.Error != nil {
		return
	}
	t, err := time.ParseInLocation(c.layout, raw, c.location)
	if err != nil {
		// 同時接受 RFC3339，方便與其他服務互通
		var rfcErr error
		if t, rfcErr = time.Parse(time.RFC3339Nano, raw); rfcErr != nil {
			iter.ReportError("decode date", fmt.Sprintf("%q does not match %q", raw, c.layout))
			return
		}
	}
	*(*time.Time)(ptr) = t
}

type datePtrEncoder struct {
	date *dateCodec
}

func (e *datePtrEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return *(**time.Time)(ptr) == nil
}

func (e *datePtrEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	t := *(**time.Time)(ptr)
	if t == nil {
		stream.WriteNil()
		return
	}
	e.date.Encode(unsafe.Pointer(t), stream)
}

type enumEncoder struct {
	typ reflect2.Type
}

func (e *enumEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return reflect.ValueOf(e.typ.UnsafeIndirect(ptr)).IsZero()
}

func (e *enumEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString(e.typ.UnsafeIndirect(ptr).(fmt.Stringer).String())
}
