package freeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestObjectMarshalJSONKeepsOrder(t *testing.T) {
	o := NewObject()
	require.NoError(t, o.Set("z", 1))
	require.NoError(t, o.Set("a", map[string]any{"nested": []any{true, "x"}}))
	require.NoError(t, o.Set("m", nil))

	data, err := o.MarshalJSON()

	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":{"nested":[true,"x"]},"m":null}`, string(data))
}

func TestEmptyContainersMarshalJSON(t *testing.T) {
	data, err := NewObject().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	data, err = NewArray().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON([]byte(`{"query":{"userId":"1"},"ids":[1,2]}`))
	require.NoError(t, err)

	o, ok := v.(*Object)
	require.True(t, ok)
	ids, ok := o.GetArray("ids")
	require.True(t, ok)
	first, _ := ids.Get(0)
	assert.Equal(t, float64(1), first)

	_, err = DecodeJSON([]byte(`{`))
	assert.Error(t, err)
}

func TestMarshalLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	o := ObjectOf(map[string]any{
		"userId": "1",
		"limit":  10,
		"flags":  []any{true, 2.5},
	})
	logger.Info("request", zap.Object("query", o))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, map[string]any{
		"userId": "1",
		"limit":  int64(10),
		"flags":  []any{true, 2.5},
	}, fields["query"])
}
