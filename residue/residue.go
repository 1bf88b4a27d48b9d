// Package residue provides the modular-residue primitives used by the
// resonance scanner. A zero ordinate gamma "resonates" with a constant c
// when gamma mod c lands within a tolerance of 0 or of c itself.
package residue

import (
	"fmt"
	"math"
)

// Mode selects how a tolerance is compared against the circular distance.
type Mode int

const (
	// Absolute compares the raw circular distance against the tolerance.
	Absolute Mode = iota
	// Relative compares distance/constant against the tolerance.
	Relative
)

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// CircularDistance returns the minimal distance of gamma mod c to the
// nearest multiple of c. The result is in [0, c/2].
func CircularDistance(gamma, c float64) float64 {
	m := math.Mod(gamma, c)
	if m < 0 {
		m += c
	}
	return math.Min(m, c-m)
}

// RelativeError returns the circular distance normalized by the constant.
func RelativeError(gamma, c float64) float64 {
	return CircularDistance(gamma, c) / c
}

// Hit reports whether gamma resonates with c at tolerance tol under mode.
func Hit(gamma, c, tol float64, mode Mode) bool {
	d := CircularDistance(gamma, c)
	if mode == Relative {
		return d/c < tol
	}
	return d < tol
}

// HitProbability returns the probability that a uniformly distributed
// residue falls within tolerance of 0 or c. This is the null model all
// significance tests score against.
func HitProbability(c, tol float64, mode Mode) float64 {
	var p float64
	if mode == Relative {
		p = 2 * tol
	} else {
		p = 2 * tol / c
	}
	if p > 1 {
		p = 1
	}
	return p
}

// AbsoluteTolerance converts tol to an absolute distance bound for c.
func AbsoluteTolerance(c, tol float64, mode Mode) float64 {
	if mode == Relative {
		return tol * c
	}
	return tol
}

// ValidConstant reports whether c can be used as a modulus.
func ValidConstant(c float64) bool {
	return c > 0 && !math.IsInf(c, 0) && !math.IsNaN(c)
}

// ValidTolerance reports whether tol is a usable tolerance.
func ValidTolerance(tol float64) bool {
	return tol > 0 && !math.IsInf(tol, 0) && !math.IsNaN(tol)
}

// DefaultAbsoluteLevels is the tolerance ladder used by the absolute-mode
// catalogs (fine structure, fundamental forces).
func DefaultAbsoluteLevels() []float64 {
	return []float64{1e-4, 1e-5, 1e-6, 1e-7, 1e-8, 1e-9}
}

// DefaultRelativeLevels is the tolerance ladder used by the relative-mode
// catalogs (Planck, light speed, Rydberg and friends).
func DefaultRelativeLevels() []float64 {
	return []float64{1e-6, 1e-7, 1e-8, 1e-9, 1e-10, 1e-11}
}
