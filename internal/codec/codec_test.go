package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/indicator-normalize/internal/domain"
)

func TestMarshalUnmarshal_JSONRoundTrip(t *testing.T) {
	rec := domain.InputRecord{ID: "1", Value: 25000, Unit: "USD Million"}
	data, err := Marshal(JSON, rec)
	require.NoError(t, err)

	var out domain.InputRecord
	require.NoError(t, Unmarshal(JSON, data, &out))
	assert.Equal(t, rec, out)
}

func TestMarshalUnmarshal_MsgPackRoundTrip(t *testing.T) {
	rec := domain.InputRecord{ID: "1", Value: 25000, Unit: "USD Million"}
	data, err := Marshal(MsgPack, rec)
	require.NoError(t, err)

	var out domain.InputRecord
	require.NoError(t, Unmarshal(MsgPack, data, &out))
	assert.Equal(t, rec, out)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, MsgPack, DetectFormat("msgpack"))
	assert.Equal(t, MsgPack, DetectFormat("mp"))
	assert.Equal(t, JSON, DetectFormat("json"))
	assert.Equal(t, JSON, DetectFormat(""))
}
