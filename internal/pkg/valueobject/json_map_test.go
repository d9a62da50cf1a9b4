package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMap_Value(t *testing.T) {
	v, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), v)

	v, err = JSONMap{"html": true}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"html":true}`, string(v.([]byte)))
}

func TestJSONMap_Scan(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    JSONMap
		wantErr error
	}{
		{name: "null", in: nil, want: JSONMap{}},
		{name: "bytes", in: []byte(`{"from_name":"Shop"}`), want: JSONMap{"from_name": "Shop"}},
		{name: "string", in: `{"html":false}`, want: JSONMap{"html": false}},
		{name: "decoded map", in: map[string]any{"html": true}, want: JSONMap{"html": true}},
		{name: "unsupported", in: 42, wantErr: ErrScanValueNotBytes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got JSONMap
			err := got.Scan(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var got JSONMap
	assert.Error(t, got.Scan([]byte(`{`)))
}

func TestJSONMap_SetAndTypedGetters(t *testing.T) {
	var m JSONMap
	m.Set("from_name", "Shop")
	m.Set("html", true)
	m.Set("attempts", 2)

	assert.Equal(t, "Shop", m.GetString("from_name"))
	assert.True(t, m.GetBool("html"))
	assert.Empty(t, m.GetString("attempts"))
	assert.False(t, m.GetBool("from_name"))
	assert.Empty(t, m.GetString("missing"))
}
