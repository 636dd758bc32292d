package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile reports a profile with non-positive geometry constants.
var ErrInvalidProfile = errors.New("invalid nucleic acid profile")

// Profile holds the helical geometry constants shared by every computation.
// A Profile is immutable once constructed; engines copy it by value.
type Profile struct {
	// ThetaB is the angular rise per half-step, in degrees.
	ThetaB float64
	// ZB is the axial rise per half-step, in lattice length units.
	ZB float64
	// ZMate is the axial offset between the two helices of a double helix.
	ZMate float64
	// G is the switch angle between a domain's two helices, in degrees.
	// Unlike the other constants it may be signed.
	G float64
	// B is the number of bases per full helical turn.
	B int
	// D is the inter-domain diameter used by the top view.
	D float64
}

// DefaultProfile returns the standard B-form profile.
func DefaultProfile() Profile {
	return Profile{
		ThetaB: 34.29,
		ZB:     0.332,
		ZMate:  0.094,
		G:      2.343,
		B:      21,
		D:      2.3,
	}
}

// ThetaC is the characteristic angle, one full turn divided over B bases.
func (p Profile) ThetaC() float64 {
	return 360.0 / float64(p.B)
}

// Validate checks that every constant except G is strictly positive.
func (p Profile) Validate() error {
	switch {
	case p.ThetaB <= 0:
		return fmt.Errorf("%w: theta_b must be positive, got %v", ErrInvalidProfile, p.ThetaB)
	case p.ZB <= 0:
		return fmt.Errorf("%w: z_b must be positive, got %v", ErrInvalidProfile, p.ZB)
	case p.ZMate <= 0:
		return fmt.Errorf("%w: z_mate must be positive, got %v", ErrInvalidProfile, p.ZMate)
	case p.B <= 0:
		return fmt.Errorf("%w: b must be positive, got %v", ErrInvalidProfile, p.B)
	case p.D <= 0:
		return fmt.Errorf("%w: d must be positive, got %v", ErrInvalidProfile, p.D)
	}
	return nil
}
