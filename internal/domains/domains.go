package domains

import (
	"fmt"

	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// Domains expands a template subunit of domains over the lattice's rotational
// symmetry. The expanded list is cyclic: the last domain's right neighbor is
// the first.
type Domains struct {
	template     []*Domain
	symmetry     int
	antiparallel bool
}

// NewDomains validates and constructs a Domains container. The template
// domains are the lattice's repeating subunit; symmetry (the "R" value) is
// how many times the subunit repeats around the tube. When antiparallel is
// set the expanded domains' joints alternate up/down around the cycle.
func NewDomains(template []*Domain, symmetry int, antiparallel bool) (*Domains, error) {
	if len(template) == 0 {
		return nil, fmt.Errorf("%w: template subunit must contain at least one domain", ErrInvalidDomain)
	}
	if symmetry < 1 {
		return nil, fmt.Errorf("%w: symmetry must be at least 1, got %d", ErrInvalidDomain, symmetry)
	}
	return &Domains{
		template:     template,
		symmetry:     symmetry,
		antiparallel: antiparallel,
	}, nil
}

// Symmetry is the number of subunit repetitions.
func (ds *Domains) Symmetry() int { return ds.symmetry }

// Antiparallel reports whether joints alternate around the cycle.
func (ds *Domains) Antiparallel() bool { return ds.antiparallel }

// Count is the total number of domains after symmetry expansion.
func (ds *Domains) Count() int { return len(ds.template) * ds.symmetry }

// All returns the expanded, re-indexed domain list. The first subunit's
// domains are copies too, so mutating the result never reaches back into the
// template. When antiparallel is set, the joints alternate starting from the
// template's final right joint, continuing the pattern across the subunit
// seam.
func (ds *Domains) All() []*Domain {
	out := make([]*Domain, 0, ds.Count())
	for cycle := 0; cycle < ds.symmetry; cycle++ {
		for _, d := range ds.template {
			out = append(out, d.Copy(len(out)))
		}
	}

	if ds.antiparallel {
		direction := ds.template[len(ds.template)-1].RightHelixJoint
		for _, d := range out {
			d.LeftHelixJoint = direction
			d.RightHelixJoint = direction
			direction = direction.Inverse()
		}
	}

	return out
}

// TopViewCoord is one domain's position in the top-down projection.
type TopViewCoord struct {
	U float64
	V float64
}

// TopView places each expanded domain in the plane by walking the cycle of
// exterior angles, stepping the inter-domain diameter each time. A closed
// lattice returns to within numerical noise of the origin after the final
// step.
func (ds *Domains) TopView(p geometry.Profile) []TopViewCoord {
	all := ds.All()
	coords := make([]TopViewCoord, len(all))

	var u, v, angle float64
	for i, d := range all {
		coords[i] = TopViewCoord{U: u, V: v}
		angle += 180.0 - d.ThetaInterior(p)
		u += p.D * cosDeg(angle)
		v += p.D * sinDeg(angle)
	}
	return coords
}
