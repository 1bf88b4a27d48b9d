package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint64ToUint32(t *testing.T) {
	v, err := Uint64ToUint32(math.MaxUint32)
	require.NoError(t, err)
	assert.Equal(t, uint32(math.MaxUint32), v)

	_, err = Uint64ToUint32(math.MaxUint32 + 1)
	assert.Error(t, err)
}

func TestIntToUint64(t *testing.T) {
	v, err := IntToUint64(42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	_, err = IntToUint64(-1)
	assert.Error(t, err)
}

func TestUint64ToInt(t *testing.T) {
	v, err := Uint64ToInt(123)
	require.NoError(t, err)
	assert.Equal(t, 123, v)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}
