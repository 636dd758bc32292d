// Package points defines the structural point types a helix is made of.
// A Point is a tagged union: every point carries position, angle, direction,
// and a domain back-reference; the Nucleoside variant adds a base letter and
// the NEMid variant adds junction and matching topology.
package points

import (
	"fmt"
	"math"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// Kind discriminates the two point variants.
type Kind int

const (
	// KindNucleoside marks a base-pair point carrying a base letter.
	KindNucleoside Kind = iota
	// KindNEMid marks a potential crossover/junction location.
	KindNEMid
)

func (k Kind) String() string {
	switch k {
	case KindNucleoside:
		return "nucleoside"
	case KindNEMid:
		return "NEMid"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StrandRef is implemented by the strand container a point is appended to.
// It exists only so points can hold a non-owning back-reference without
// depending on the strands package.
type StrandRef interface {
	StrandName() string
}

// Point is a single structural point on a helix. Variant-specific fields are
// meaningful only for the matching Kind; dispatch on Kind, not on field
// presence.
type Point struct {
	X     float64
	Z     float64
	Angle float64

	Direction geometry.Direction
	Kind      Kind

	// Domain is a non-owning back-reference to the owning column.
	Domain *domains.Domain
	// Strand is set when the point is appended to a strand.
	Strand StrandRef

	// Base is the Nucleoside payload.
	Base Base

	// NEMid payload. Matching is the point at the same helical index on the
	// other helix of the same double helix; Juncmate is the superposed point
	// on an adjacent domain, nil when none was detected. Junctable is set by
	// the engine when a juncmate is found; Junction is only ever set by an
	// external junction-promotion collaborator.
	Matching  *Point
	Juncmate  *Point
	Junction  bool
	Junctable bool
}

// NewNucleoside constructs a base-pair point.
func NewNucleoside(x, z, angle float64, direction geometry.Direction, domain *domains.Domain) (*Point, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	return &Point{
		X: x, Z: z, Angle: angle,
		Direction: direction,
		Kind:      KindNucleoside,
		Domain:    domain,
		Base:      NoBase,
	}, nil
}

// NewNEMid constructs a junction-site point.
func NewNEMid(x, z, angle float64, direction geometry.Direction, domain *domains.Domain) (*Point, error) {
	if err := direction.Validate(); err != nil {
		return nil, err
	}
	return &Point{
		X: x, Z: z, Angle: angle,
		Direction: direction,
		Kind:      KindNEMid,
		Domain:    domain,
	}, nil
}

// Position returns the point's planar coordinates.
func (p *Point) Position() (x, z float64) {
	return p.X, p.Z
}

// Overlaps reports whether the two points superpose within tolerance. The x
// comparison is circular modulo width (the total domain count) so that the
// lattice's last column abuts its first.
func (p *Point) Overlaps(other *Point, width float64, tolerance float64) bool {
	if math.Abs(p.Z-other.Z) > tolerance {
		return false
	}
	dx := math.Abs(geometry.Mod(p.X, width) - geometry.Mod(other.X, width))
	if dx > width-dx {
		dx = width - dx
	}
	return dx <= tolerance
}

func (p *Point) String() string {
	switch p.Kind {
	case KindNEMid:
		return fmt.Sprintf("NEMid(pos=(%.3f, %.3f), angle=%.3f°, junction=%t, junctable=%t)",
			p.X, p.Z, p.Angle, p.Junction, p.Junctable)
	default:
		return fmt.Sprintf("Nucleoside(pos=(%.3f, %.3f), angle=%.3f°, base=%s)",
			p.X, p.Z, p.Angle, p.Base)
	}
}
