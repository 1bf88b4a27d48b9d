package scan

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/okushigue/zetascan/constants"
	"github.com/okushigue/zetascan/residue"
)

// Hit is a single zero resonating with a constant.
type Hit struct {
	Index    uint64
	Gamma    float64
	Distance float64
	RelError float64
}

// Set collects the hits for one (constant, tolerance) cell. The zero
// indices are kept in a roaring bitmap so comparative overlap queries stay
// cheap even with millions of hits.
type Set struct {
	Constant  constants.Constant
	Tolerance float64
	Mode      residue.Mode

	// tolAbs is the absolute distance bound derived from Tolerance.
	tolAbs float64

	bitmap *roaring64.Bitmap
	hits   []Hit
}

func newSet(c constants.Constant, tol float64, mode residue.Mode) *Set {
	return &Set{
		Constant:  c,
		Tolerance: tol,
		Mode:      mode,
		tolAbs:    residue.AbsoluteTolerance(c.Value, tol, mode),
		bitmap:    roaring64.New(),
	}
}

func (s *Set) add(h Hit) {
	s.hits = append(s.hits, h)
	s.bitmap.Add(h.Index)
}

// Count returns the number of hits.
func (s *Set) Count() int { return len(s.hits) }

// Hits returns the hits in zero-index order. The slice is owned by the set.
func (s *Set) Hits() []Hit { return s.hits }

// Indices returns the bitmap of resonating zero indices. Callers must treat
// it as read-only.
func (s *Set) Indices() *roaring64.Bitmap { return s.bitmap }

// AbsoluteTolerance returns the absolute distance bound of the cell.
func (s *Set) AbsoluteTolerance() float64 { return s.tolAbs }

// Quality returns the comparison quality of a hit under the set's mode:
// circular distance in absolute mode, relative error otherwise.
func (s *Set) Quality(h Hit) float64 {
	if s.Mode == residue.Relative {
		return h.RelError
	}
	return h.Distance
}

// Best returns the hit with the smallest distance, false when empty.
func (s *Set) Best() (Hit, bool) {
	if len(s.hits) == 0 {
		return Hit{}, false
	}
	best := s.hits[0]
	for _, h := range s.hits[1:] {
		if h.Distance < best.Distance {
			best = h
		}
	}
	return best, true
}

func (s *Set) distances() []float64 {
	out := make([]float64, len(s.hits))
	for i, h := range s.hits {
		out[i] = h.Distance
	}
	return out
}

func (s *Set) indexSlice() []uint64 {
	out := make([]uint64, len(s.hits))
	for i, h := range s.hits {
		out[i] = h.Index
	}
	return out
}
