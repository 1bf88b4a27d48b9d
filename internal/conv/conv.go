// Package conv provides checked integer conversions for boundaries where
// zero indices cross between int, uint32 (bitmap keys) and uint64.
package conv

import (
	"fmt"
	"math"
)

// Uint64ToUint32 converts a zero index to a bitmap key.
func Uint64ToUint32(v uint64) (uint32, error) {
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d does not fit in uint32", v)
	}
	return uint32(v), nil
}

// IntToUint64 converts a line count to a zero index.
func IntToUint64(v int) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d is negative", v)
	}
	return uint64(v), nil
}

// Uint64ToInt converts a stored count back to a slice length.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d does not fit in int", v)
	}
	return int(v), nil
}
