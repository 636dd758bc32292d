package domains

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/nanoweave/internal/geometry"
)

func mustDomain(t *testing.T, index int, left, right geometry.Direction) *Domain {
	t.Helper()
	d, err := NewDomain(index, left, right, validCount(), validCount(), 9)
	require.NoError(t, err)
	return d
}

func TestNewDomainsValidation(t *testing.T) {
	_, err := NewDomains(nil, 2, false)
	assert.ErrorIs(t, err, ErrInvalidDomain)

	_, err = NewDomains([]*Domain{mustDomain(t, 0, geometry.Up, geometry.Up)}, 0, false)
	assert.ErrorIs(t, err, ErrInvalidDomain)
}

func TestAllExpandsSymmetry(t *testing.T) {
	template := []*Domain{
		mustDomain(t, 0, geometry.Up, geometry.Down),
		mustDomain(t, 1, geometry.Down, geometry.Up),
	}
	ds, err := NewDomains(template, 3, false)
	require.NoError(t, err)

	assert.Equal(t, 6, ds.Count())

	all := ds.All()
	require.Len(t, all, 6)
	for i, d := range all {
		assert.Equal(t, i, d.Index)
	}

	// Joints repeat per subunit when not antiparallel.
	assert.Equal(t, geometry.Up, all[0].LeftHelixJoint)
	assert.Equal(t, geometry.Down, all[1].LeftHelixJoint)
	assert.Equal(t, geometry.Up, all[2].LeftHelixJoint)

	// Expansion returns copies, not aliases of the template.
	all[0].LeftHelixCount.Bottom = 99
	assert.Equal(t, 2, template[0].LeftHelixCount.Bottom)
}

func TestAllAntiparallelAlternates(t *testing.T) {
	template := []*Domain{
		mustDomain(t, 0, geometry.Up, geometry.Up),
		mustDomain(t, 1, geometry.Up, geometry.Down),
	}
	ds, err := NewDomains(template, 2, true)
	require.NoError(t, err)

	all := ds.All()
	require.Len(t, all, 4)

	// Alternation starts from the template's final right joint.
	expected := geometry.Down
	for i, d := range all {
		assert.Equal(t, expected, d.LeftHelixJoint, "domain %d left joint", i)
		assert.Equal(t, expected, d.RightHelixJoint, "domain %d right joint", i)
		expected = expected.Inverse()
	}
}

func TestTopView(t *testing.T) {
	// 14 domains of interior multiple 9 with B=21 close into a regular
	// polygon: each step turns 180 - 9*(360/21) = 25.714 degrees, and 14
	// steps complete the full 360.
	template := make([]*Domain, 14)
	for i := range template {
		template[i] = mustDomain(t, i, geometry.Up, geometry.Down)
	}
	ds, err := NewDomains(template, 1, false)
	require.NoError(t, err)

	p := geometry.DefaultProfile()
	coords := ds.TopView(p)
	require.Len(t, coords, 14)

	assert.InDelta(t, 0, coords[0].U, 1e-12)
	assert.InDelta(t, 0, coords[0].V, 1e-12)

	// Every consecutive pair is one diameter apart.
	for i := 1; i < len(coords); i++ {
		du := coords[i].U - coords[i-1].U
		dv := coords[i].V - coords[i-1].V
		assert.InDelta(t, p.D, math.Hypot(du, dv), 1e-9, "step %d", i)
	}

	// The closing step from the last domain returns to the origin.
	turn := 0.0
	for _, d := range template {
		turn += 180.0 - d.ThetaInterior(p)
	}
	assert.InDelta(t, 360.0, turn, 1e-9)
}
