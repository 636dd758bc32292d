// Package domains describes the columns of a nanotube lattice. A Domain is
// one column; a Domains container expands a template subunit over the
// lattice's rotational symmetry and fixes the cyclic neighbor order.
package domains

import (
	"errors"
	"fmt"

	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// ErrInvalidDomain reports a domain constructed with negative counts or an
// invalid joint direction.
var ErrInvalidDomain = errors.New("invalid domain")

// HelixCount describes how many half-steps of point generation occur below,
// within, and above a domain's primary span.
type HelixCount struct {
	Bottom int
	Body   int
	Top    int
}

// Validate checks that every count is non-negative.
func (c HelixCount) Validate() error {
	if c.Bottom < 0 || c.Body < 0 || c.Top < 0 {
		return fmt.Errorf("%w: helix counts must be non-negative, got (%d, %d, %d)",
			ErrInvalidDomain, c.Bottom, c.Body, c.Top)
	}
	return nil
}

// Total is the number of half-steps spanned by the three counts.
func (c HelixCount) Total() int {
	return c.Bottom + c.Body + c.Top
}

// Domain is a single column of the lattice. Domains form a cycle: domain i's
// right neighbor is domain (i+1) mod N.
type Domain struct {
	// Index is the domain's position within the expanded cyclic sequence.
	Index int

	// LeftHelixJoint and RightHelixJoint name which of the domain's two
	// helices continues into the neighboring domain on each side.
	LeftHelixJoint  geometry.Direction
	RightHelixJoint geometry.Direction

	// LeftHelixCount sizes the zeroed helix, OtherHelixCount the derived one.
	LeftHelixCount  HelixCount
	OtherHelixCount HelixCount

	// ThetaInteriorMultiple expresses the domain's interior angle as a
	// multiple of the profile's characteristic angle.
	ThetaInteriorMultiple int
}

// NewDomain validates and constructs a Domain.
func NewDomain(
	index int,
	leftJoint, rightJoint geometry.Direction,
	leftCount, otherCount HelixCount,
	thetaInteriorMultiple int,
) (*Domain, error) {
	if err := leftJoint.Validate(); err != nil {
		return nil, fmt.Errorf("%w: left helix joint: %v", ErrInvalidDomain, err)
	}
	if err := rightJoint.Validate(); err != nil {
		return nil, fmt.Errorf("%w: right helix joint: %v", ErrInvalidDomain, err)
	}
	if err := leftCount.Validate(); err != nil {
		return nil, fmt.Errorf("left helix count: %w", err)
	}
	if err := otherCount.Validate(); err != nil {
		return nil, fmt.Errorf("other helix count: %w", err)
	}
	if thetaInteriorMultiple <= 0 {
		return nil, fmt.Errorf("%w: theta interior multiple must be positive, got %d",
			ErrInvalidDomain, thetaInteriorMultiple)
	}
	return &Domain{
		Index:                 index,
		LeftHelixJoint:        leftJoint,
		RightHelixJoint:       rightJoint,
		LeftHelixCount:        leftCount,
		OtherHelixCount:       otherCount,
		ThetaInteriorMultiple: thetaInteriorMultiple,
	}, nil
}

// ThetaInterior is the domain's interior angle in degrees.
func (d *Domain) ThetaInterior(p geometry.Profile) float64 {
	return float64(d.ThetaInteriorMultiple) * p.ThetaC()
}

// XFromAngle maps a helical angle to an x coordinate. The angle is reduced to
// [0°, 360°) and mapped piecewise over the domain's exterior/interior angle
// split onto [0, 1], then offset by the domain index so each column occupies
// its own unit interval of the screen. Every generated point derives its x
// from its angle through this mapping, never independently.
func (d *Domain) XFromAngle(angle float64, p geometry.Profile) float64 {
	thetaInterior := d.ThetaInterior(p)
	thetaExterior := 360.0 - thetaInterior

	angle = geometry.Mod(angle, 360.0)

	var x float64
	if angle < thetaExterior {
		x = angle / thetaExterior
	} else {
		x = (360.0 - angle) / thetaInterior
	}
	return x + float64(d.Index)
}

// Copy returns a value copy of the domain with the given index.
func (d *Domain) Copy(index int) *Domain {
	copied := *d
	copied.Index = index
	return &copied
}
