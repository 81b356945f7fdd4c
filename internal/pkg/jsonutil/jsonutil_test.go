// internal/pkg/jsonutil/jsonutil_test.go
package jsonutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dukahub/duka-be/internal/pkg/jsonutil"
)

func TestDecodeInto(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		var out []string
		ok := jsonutil.DecodeInto([]byte(`["a","b"]`), &out)
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, out)
	})

	t.Run("wrong shape leaves dest untouched", func(t *testing.T) {
		out := []string{"kept"}
		ok := jsonutil.DecodeInto([]byte(`{"not":"a list"}`), &out)
		assert.False(t, ok)
		assert.Equal(t, []string{"kept"}, out)
	})

	t.Run("truncated payload leaves dest untouched", func(t *testing.T) {
		out := map[string]int{"kept": 1}
		ok := jsonutil.DecodeInto([]byte(`{"a": 1`), &out)
		assert.False(t, ok)
		assert.Equal(t, map[string]int{"kept": 1}, out)
	})

	t.Run("bare null leaves dest untouched", func(t *testing.T) {
		out := []string{"kept"}
		ok := jsonutil.DecodeInto([]byte(`null`), &out)
		assert.False(t, ok)
		assert.Equal(t, []string{"kept"}, out)
	})

	t.Run("padded null leaves dest untouched", func(t *testing.T) {
		out := []string{"kept"}
		ok := jsonutil.DecodeInto([]byte("  null\n"), &out)
		assert.False(t, ok)
		assert.Equal(t, []string{"kept"}, out)
	})

	t.Run("empty payload", func(t *testing.T) {
		out := []string{"kept"}
		ok := jsonutil.DecodeInto(nil, &out)
		assert.False(t, ok)
		assert.Equal(t, []string{"kept"}, out)
	})

	t.Run("non-pointer dest", func(t *testing.T) {
		assert.False(t, jsonutil.DecodeInto([]byte(`1`), 42))
	})

	t.Run("nil pointer dest", func(t *testing.T) {
		var p *int
		assert.False(t, jsonutil.DecodeInto([]byte(`1`), p))
	})
}
