package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/nanoweave/internal/geometry"
)

func TestBaseComplement(t *testing.T) {
	tests := []struct {
		base Base
		want Base
	}{
		{BaseA, BaseT},
		{BaseT, BaseA},
		{BaseC, BaseG},
		{BaseG, BaseC},
		{NoBase, NoBase},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.base.Complement())
	}
}

func TestBaseString(t *testing.T) {
	assert.Equal(t, "A", BaseA.String())
	assert.Equal(t, "-", NoBase.String())
}

func TestConstructorsValidateDirection(t *testing.T) {
	_, err := NewNEMid(0, 0, 0, geometry.Direction(9), nil)
	assert.ErrorIs(t, err, geometry.ErrDirection)

	_, err = NewNucleoside(0, 0, 0, geometry.Direction(-1), nil)
	assert.ErrorIs(t, err, geometry.ErrDirection)

	p, err := NewNEMid(1, 2, 3, geometry.Up, nil)
	require.NoError(t, err)
	assert.Equal(t, KindNEMid, p.Kind)
	x, z := p.Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, z)
}

func TestOverlaps(t *testing.T) {
	const width = 14.0
	const tol = 0.01

	mk := func(x, z float64) *Point {
		p, err := NewNEMid(x, z, 0, geometry.Up, nil)
		require.NoError(t, err)
		return p
	}

	// Coincident within tolerance.
	assert.True(t, mk(3.0, 1.5).Overlaps(mk(3.005, 1.5), width, tol))

	// z separation rejects regardless of x.
	assert.False(t, mk(3.0, 1.5).Overlaps(mk(3.0, 1.6), width, tol))

	// x separation beyond tolerance rejects.
	assert.False(t, mk(3.0, 1.5).Overlaps(mk(3.2, 1.5), width, tol))

	// The lattice wraps: column 0 abuts column width.
	assert.True(t, mk(0.004, 1.5).Overlaps(mk(13.998, 1.5), width, tol))

	// Reduction modulo width brings far columns together.
	assert.True(t, mk(0.5, 1.5).Overlaps(mk(14.5, 1.5), width, tol))
}

func TestPointString(t *testing.T) {
	n, err := NewNEMid(1, 2, 3, geometry.Up, nil)
	require.NoError(t, err)
	assert.Contains(t, n.String(), "NEMid")

	nuc, err := NewNucleoside(1, 2, 3, geometry.Down, nil)
	require.NoError(t, err)
	nuc.Base = BaseG
	assert.Contains(t, nuc.String(), "base=G")
}
