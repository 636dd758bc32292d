package strands

import (
	"github.com/google/uuid"

	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// Grey tones used for plain single-domain strands, indexed by direction.
var greys = [2][3]uint8{
	{120, 120, 120}, // down
	{80, 80, 80},    // up
}

// Palette applied round-robin to interdomain strands.
var palette = [][3]uint8{
	{200, 0, 0},
	{0, 120, 0},
	{0, 0, 200},
	{200, 120, 0},
	{120, 0, 200},
	{0, 120, 120},
}

// Strands is the flat container of strands emitted by the engine. Once
// emitted, strands are independently owned: mutating them does not feed back
// into the double helices that produced them.
type Strands struct {
	profile geometry.Profile
	items   []*Strand
	uuid    string
}

// NewStrands constructs a container over the given strands.
func NewStrands(profile geometry.Profile, items []*Strand) *Strands {
	return &Strands{
		profile: profile,
		items:   items,
		uuid:    uuid.NewString(),
	}
}

// UUID is the container's generated identity.
func (ss *Strands) UUID() string { return ss.uuid }

// Profile returns the helical constants the strands were generated with.
func (ss *Strands) Profile() geometry.Profile { return ss.profile }

// Items returns the strands in emission order.
func (ss *Strands) Items() []*Strand { return ss.items }

// Len is the number of strands.
func (ss *Strands) Len() int { return len(ss.items) }

// Style assigns automatic colors and thicknesses: interdomain strands cycle
// through the palette, single-domain strands get direction greys. Strands
// with AutoColor or AutoThickness cleared are left alone.
func (ss *Strands) Style() {
	colorIndex := 0
	for _, s := range ss.items {
		if s.AutoThickness {
			s.Thickness = 2
		}
		if !s.AutoColor {
			continue
		}
		if s.Interdomain() {
			s.Color = palette[colorIndex%len(palette)]
			colorIndex++
		} else if s.UpStrand() {
			s.Color = greys[geometry.Up]
		} else {
			s.Color = greys[geometry.Down]
		}
	}
}
