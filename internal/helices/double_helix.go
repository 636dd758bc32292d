package helices

import (
	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// DoubleHelix owns the two helices of one domain. The helices are tagged two
// independent ways: up/down by direction, and zeroed/other by role in the
// recurrence. The zeroed helix is the one pinned to the previous domain's
// output, which by construction is the left-joint helix.
type DoubleHelix struct {
	Domain *domains.Domain

	// helices is indexed by direction.
	helices [2]*Helix
}

// NewDoubleHelix allocates the two empty helices for a domain.
func NewDoubleHelix(d *domains.Domain) *DoubleHelix {
	return &DoubleHelix{
		Domain: d,
		helices: [2]*Helix{
			geometry.Down: {Direction: geometry.Down, Domain: d},
			geometry.Up:   {Direction: geometry.Up, Domain: d},
		},
	}
}

// UpHelix is the helix traversed upward.
func (dh *DoubleHelix) UpHelix() *Helix { return dh.helices[geometry.Up] }

// DownHelix is the helix traversed downward.
func (dh *DoubleHelix) DownHelix() *Helix { return dh.helices[geometry.Down] }

// Helix returns the helix with the given direction.
func (dh *DoubleHelix) Helix(direction geometry.Direction) *Helix {
	return dh.helices[direction]
}

// ZeroedHelix is the helix whose initial coordinate is pinned to the previous
// double helix's output.
func (dh *DoubleHelix) ZeroedHelix() *Helix {
	return dh.helices[dh.Domain.LeftHelixJoint]
}

// OtherHelix is the helix derived from the zeroed one by the switch angle and
// axial mate offset.
func (dh *DoubleHelix) OtherHelix() *Helix {
	return dh.helices[dh.Domain.LeftHelixJoint.Inverse()]
}

// LeftJointHelix continues into the left neighbor.
func (dh *DoubleHelix) LeftJointHelix() *Helix {
	return dh.helices[dh.Domain.LeftHelixJoint]
}

// RightJointHelix continues into the right neighbor; the next domain's anchor
// is read off this helix.
func (dh *DoubleHelix) RightJointHelix() *Helix {
	return dh.helices[dh.Domain.RightHelixJoint]
}
