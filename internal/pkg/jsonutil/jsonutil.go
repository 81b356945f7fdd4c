// internal/pkg/jsonutil/jsonutil.go

// Package jsonutil holds the decode helper shared by the blob store
// adapters.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// DecodeInto unmarshals data into dest only when the whole payload
// decodes cleanly into dest's type. It decodes into a fresh value first,
// so a payload of the wrong shape (an object where a collection is
// expected, truncated JSON, and so on) leaves dest completely untouched.
// A bare null counts as malformed too: json.Unmarshal treats it as a
// no-op, which would otherwise pass the zero value off as a stored
// record. dest must be a non-nil pointer.
func DecodeInto(data []byte, dest any) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	tmp := reflect.New(rv.Type().Elem())
	if err := json.Unmarshal(data, tmp.Interface()); err != nil {
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}
