package wirebind_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wirebind "github.com/reoring/wirebind"
)

func TestWriter_NestedScopes(t *testing.T) {
	w := wirebind.NewWriter()
	err := w.Object(func() error {
		if err := w.Key("a"); err != nil {
			return err
		}
		if err := w.Array(func() error {
			_ = w.Integer(1)
			_ = w.String("x<y>&\"")
			_ = w.Bool(true)
			_ = w.Null()
			return w.Float(0.5)
		}); err != nil {
			return err
		}
		if err := w.Key("b"); err != nil {
			return err
		}
		return w.Number("1.50")
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,"x<y>&\"",true,null,0.5],"b":1.50}`, string(w.Bytes()))
	assert.Equal(t, 0, w.Depth())
}

func TestWriter_ScopeClosedOnError(t *testing.T) {
	w := wirebind.NewWriter()
	boom := errors.New("boom")
	err := w.Object(func() error {
		_ = w.Key("a")
		_ = w.Integer(1)
		return w.Array(func() error { return boom })
	})
	assert.ErrorIs(t, err, wirebind.ErrWriterState)

	w.Reset()
	err = w.Array(func() error {
		_ = w.Integer(1)
		return w.Object(func() error {
			assert.Equal(t, 2, w.Depth())
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, w.Depth())
	assert.True(t, json.Valid(w.Bytes()), string(w.Bytes()))
}

func TestWriter_Misuse(t *testing.T) {
	w := wirebind.NewWriter()
	assert.ErrorIs(t, w.Key("k"), wirebind.ErrWriterState)

	err := w.Object(func() error { return w.Integer(1) })
	assert.ErrorIs(t, err, wirebind.ErrWriterState)

	w.Reset()
	err = w.Object(func() error {
		_ = w.Key("a")
		return w.Key("b")
	})
	assert.ErrorIs(t, err, wirebind.ErrWriterState)

	w.Reset()
	err = w.Array(func() error { return w.Key("a") })
	assert.ErrorIs(t, err, wirebind.ErrWriterState)

	w.Reset()
	err = w.Object(func() error { return w.Key("dangling") })
	assert.ErrorIs(t, err, wirebind.ErrWriterState)
	assert.True(t, json.Valid(w.Bytes()))

	w.Reset()
	require.NoError(t, w.Integer(1))
	assert.ErrorIs(t, w.Integer(2), wirebind.ErrWriterState)
}

func TestWriter_RejectsNonJSONNumbers(t *testing.T) {
	w := wirebind.NewWriter()
	assert.Error(t, w.Float(math.NaN()))
	assert.Error(t, w.Float(math.Inf(1)))
	for _, n := range []json.Number{"", "1.", "abc", "true", "1 "} {
		assert.Error(t, w.Number(n), string(n))
	}
	assert.Empty(t, w.Bytes())
}

func TestWriter_Raw(t *testing.T) {
	w := wirebind.NewWriter()
	tree := map[string]any{
		"z": []any{json.Number("1e2"), nil, "s"},
		"a": map[string]any{"y": true, "x": 1.25},
		"m": json.RawMessage(`{ "k" : [ 1 , 2 ] }`),
		"i": -3,
	}
	require.NoError(t, w.Raw(tree))
	assert.Equal(t, `{"a":{"x":1.25,"y":true},"i":-3,"m":{"k":[1,2]},"z":[1e2,null,"s"]}`, string(w.Bytes()))

	w.Reset()
	assert.Error(t, w.Raw(struct{}{}))
}

func TestWriter_WriteTo(t *testing.T) {
	w := wirebind.NewWriter()
	require.NoError(t, w.String("hi"))
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, `"hi"`, buf.String())
}
