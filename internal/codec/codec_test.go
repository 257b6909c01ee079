package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/hanpama/graphcache/internal/codec"
)

func TestByName(t *testing.T) {
	c, err := codec.ByName("")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	c, err = codec.ByName("proto")
	require.NoError(t, err)
	assert.Equal(t, "proto", c.Name())

	_, err = codec.ByName("msgpack")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	// Values as they leave the deconstruction engine; both codecs normalize
	// integers to float64 on decode.
	value := map[string]any{
		"id":    "42",
		"score": 9.5,
		"tags":  []any{"a", "b"},
		"nodes": []any{1.0, 2.0, 3.0},
		"flag":  true,
		"gone":  nil,
	}

	for _, c := range []codec.Codec{codec.JSON{}, codec.Proto{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Encode(value)
			require.NoError(t, err)

			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, value, got)
		})
	}
}

func TestDecode_Garbage(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.Proto{}} {
		t.Run(c.Name(), func(t *testing.T) {
			_, err := c.Decode([]byte("\xff\xfe not a payload"))
			assert.Error(t, err)
		})
	}
}

func TestProto_RejectsTypedSlices(t *testing.T) {
	_, err := codec.Proto{}.Encode([]int{1, 2, 3})
	assert.Error(t, err)

	data, err := codec.JSON{}.Encode([]int{1, 2, 3})
	require.NoError(t, err)
	got, err := codec.JSON{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, got)
}
