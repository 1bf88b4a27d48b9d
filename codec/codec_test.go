package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleResult struct {
	Constant string    `json:"constant"`
	Count    int       `json:"count"`
	Best     float64   `json:"best"`
	Gammas   []float64 `json:"gammas"`
}

func TestCodecRoundTrip(t *testing.T) {
	in := sampleResult{
		Constant: "fine_structure",
		Count:    37,
		Best:     4.7e-8,
		Gammas:   []float64{14.134725141734693, 21.022039638771555},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out sampleResult
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCodecCrossDecode(t *testing.T) {
	in := sampleResult{Constant: "planck", Count: 3}

	data, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)

	var out sampleResult
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshalDefault(t *testing.T) {
	b := MustMarshal(nil, map[string]int{"zeros": 100000})
	assert.NotEmpty(t, b)
}
