// Package helices implements the double-helix geometry engine: per-domain
// helix coordinate arrays, the cross-domain alignment recurrence, and the
// junction/matching topology derived from it.
package helices

import (
	"fmt"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

// Helix is the ordered point data for one (domain, direction) pair. The
// coordinate arrays are filled by DoubleHelices.Compute and materialize as an
// alternating nucleoside/NEMid point sequence.
type Helix struct {
	Direction geometry.Direction
	Domain    *domains.Domain

	Xs     []float64
	Zs     []float64
	Angles []float64
}

// Len is the number of generated samples.
func (h *Helix) Len() int { return len(h.Zs) }

// Reverse flips all three coordinate arrays in place so the index order
// matches the up helix's left-to-right traversal.
func (h *Helix) Reverse() {
	geometry.Reverse(h.Xs)
	geometry.Reverse(h.Zs)
	geometry.Reverse(h.Angles)
}

// checkLengths enforces the equal-length contract on the generated arrays.
func (h *Helix) checkLengths() error {
	if len(h.Angles) != len(h.Zs) || len(h.Angles) != len(h.Xs) {
		return fmt.Errorf("%w: domain %d %s helix: %d angles, %d z coords, %d x coords",
			geometry.ErrLengthMismatch, h.Domain.Index, h.Direction,
			len(h.Angles), len(h.Zs), len(h.Xs))
	}
	return nil
}

// Points materializes the coordinate arrays as owned point objects. Even
// indices become nucleosides and odd indices NEMids, so a well-formed helix
// (odd sample count) starts and ends with a nucleoside.
func (h *Helix) Points() ([]*points.Point, error) {
	if err := h.checkLengths(); err != nil {
		return nil, err
	}
	out := make([]*points.Point, h.Len())
	for i := range out {
		var p *points.Point
		var err error
		if i%2 == 0 {
			p, err = points.NewNucleoside(h.Xs[i], h.Zs[i], h.Angles[i], h.Direction, h.Domain)
		} else {
			p, err = points.NewNEMid(h.Xs[i], h.Zs[i], h.Angles[i], h.Direction, h.Domain)
		}
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Strand converts the helix into an independently owned strand.
func (h *Helix) Strand(profile geometry.Profile) (*strands.Strand, error) {
	items, err := h.Points()
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("Domain %d %s strand", h.Domain.Index, h.Direction)
	return strands.New(profile, name, items...), nil
}
