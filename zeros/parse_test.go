package zeros

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	input := strings.Join([]string{
		"14.134725141734693",
		"21.022039638771555",
		"not-a-number",
		"",
		"  25.010857580145688  ",
	}, "\n")

	zs, skipped, err := ParseText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, zs, 3)

	assert.Equal(t, Zero{Index: 1, Gamma: 14.134725141734693}, zs[0])
	assert.Equal(t, Zero{Index: 2, Gamma: 21.022039638771555}, zs[1])
	// Bad lines consume their line number.
	assert.Equal(t, Zero{Index: 5, Gamma: 25.010857580145688}, zs[2])
}

func TestParseTextEmpty(t *testing.T) {
	zs, skipped, err := ParseText(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, zs)
}

func TestGammas(t *testing.T) {
	zs := []Zero{{Index: 1, Gamma: 14.1}, {Index: 2, Gamma: 21.0}}
	assert.Equal(t, []float64{14.1, 21.0}, Gammas(zs))
}
