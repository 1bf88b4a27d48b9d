// Package zeros loads Riemann zeta zero ordinates from text files and
// maintains a compressed binary cache so repeat scans skip the parse.
package zeros

// Zero is a single non-trivial zeta zero on the critical line.
type Zero struct {
	// Index is the 1-based position of the zero in the source file.
	Index uint64
	// Gamma is the imaginary part of the zero.
	Gamma float64
}

// Gammas extracts the ordinates from a zero list.
func Gammas(zs []Zero) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = z.Gamma
	}
	return out
}
