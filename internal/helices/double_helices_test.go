package helices

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
)

func testProfile() geometry.Profile {
	return geometry.Profile{
		ThetaB: 34.3,
		ZB:     0.332,
		ZMate:  0.094,
		G:      2.343,
		B:      21,
		D:      2.3,
	}
}

func mustDomains(t *testing.T, template []*domains.Domain, symmetry int, antiparallel bool) *domains.Domains {
	t.Helper()
	ds, err := domains.NewDomains(template, symmetry, antiparallel)
	require.NoError(t, err)
	return ds
}

func symmetricDomain(t *testing.T, index int, joint geometry.Direction, count domains.HelixCount) *domains.Domain {
	t.Helper()
	d, err := domains.NewDomain(index, joint, joint, count, count, 9)
	require.NoError(t, err)
	return d
}

// computeEngine builds and computes an engine over the given template.
func computeEngine(t *testing.T, profile geometry.Profile, template []*domains.Domain) *DoubleHelices {
	t.Helper()
	engine, err := New(mustDomains(t, template, 1, false), profile)
	require.NoError(t, err)
	require.NoError(t, engine.Compute(DefaultPadding))
	return engine
}

func TestComputeAnchorsSecondDomainToFirst(t *testing.T) {
	profile := testProfile()
	count := domains.HelixCount{Bottom: 2, Body: 10, Top: 2}
	template := []*domains.Domain{
		symmetricDomain(t, 0, geometry.Up, count),
		symmetricDomain(t, 1, geometry.Up, count),
	}
	engine := computeEngine(t, profile, template)

	// Re-derive the anchor by hand: the z of the argmax-x NEMid among the
	// first B NEMid samples of domain 0's right-joint helix, reduced modulo
	// |Z_b * B|, then modulo Z_b, then pushed down by the bottom count plus
	// the extra half-spacing.
	right := engine.At(0).RightJointHelix()
	xs := nemidSamples(right.Xs, profile.B)
	zs := nemidSamples(right.Zs, -1)
	require.NotEmpty(t, xs)

	alignedZ := zs[floats.MaxIdx(xs)]
	alignedZ = geometry.Mod(alignedZ, math.Abs(profile.ZB*float64(profile.B)))
	initialZ := geometry.Mod(alignedZ, profile.ZB)
	initialZ = initialZ - float64(count.Bottom)*profile.ZB - profile.ZB/2

	// Both joints are up, so the zeroed helix is the up helix and was never
	// reversed: its first sample is the initial coordinate.
	zeroed := engine.At(1).ZeroedHelix()
	assert.Equal(t, geometry.Up, zeroed.Direction)
	assert.InDelta(t, initialZ, zeroed.Zs[0], 1e-9)
}

func TestComputeCoordinateContracts(t *testing.T) {
	profile := testProfile()
	count := domains.HelixCount{Bottom: 2, Body: 10, Top: 2}
	template := []*domains.Domain{
		symmetricDomain(t, 0, geometry.Up, count),
		symmetricDomain(t, 1, geometry.Up, count),
	}
	engine := computeEngine(t, profile, template)

	for i := 0; i < engine.Len(); i++ {
		dh := engine.At(i)
		for _, h := range []*Helix{dh.UpHelix(), dh.DownHelix()} {
			// Equal-length arrays, with the expected sample count: two
			// samples per count unit plus the terminal nucleoside.
			require.Equal(t, len(h.Zs), len(h.Angles))
			require.Equal(t, len(h.Zs), len(h.Xs))
			assert.Equal(t, 2*count.Total()+1, h.Len())

			// x is derived from angle, never generated independently.
			for j := range h.Angles {
				assert.Equal(t, h.Domain.XFromAngle(h.Angles[j], profile), h.Xs[j])
			}
		}
	}
}

func TestComputeReversesDownHelix(t *testing.T) {
	profile := testProfile()
	count := domains.HelixCount{Bottom: 0, Body: 6, Top: 0}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	engine := computeEngine(t, profile, template)

	down := engine.At(0).DownHelix()
	for j := 1; j < down.Len(); j++ {
		assert.Less(t, down.Zs[j], down.Zs[j-1], "down helix z must descend after reversal")
	}
}

func TestStrandsAlternation(t *testing.T) {
	profile := testProfile()
	count := domains.HelixCount{Bottom: 1, Body: 4, Top: 1}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	engine := computeEngine(t, profile, template)

	ss, err := engine.Strands()
	require.NoError(t, err)
	require.Equal(t, 2, ss.Len())

	for _, strand := range ss.Items() {
		items := strand.Items()
		require.NotEmpty(t, items)
		assert.Equal(t, points.KindNucleoside, items[0].Kind)
		assert.Equal(t, points.KindNucleoside, items[len(items)-1].Kind)
		for i, p := range items {
			if i%2 == 0 {
				assert.Equal(t, points.KindNucleoside, p.Kind)
			} else {
				assert.Equal(t, points.KindNEMid, p.Kind)
			}
		}
	}
}

// wraparoundProfile is tuned so a single domain's two helices superpose: the
// mate offset equals a whole step and the switch angle equals a whole angular
// step, so the down helix's grid lands exactly on the up helix's.
func wraparoundProfile() geometry.Profile {
	return geometry.Profile{
		ThetaB: 720.0 / 21.0,
		ZB:     0.332,
		ZMate:  0.332,
		G:      720.0 / 21.0,
		B:      21,
		D:      2.3,
	}
}

func TestSingleDomainWraparoundJunctions(t *testing.T) {
	profile := wraparoundProfile()
	count := domains.HelixCount{Bottom: 0, Body: 8, Top: 0}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	engine := computeEngine(t, profile, template)

	ss, err := engine.Strands()
	require.NoError(t, err)

	for _, strand := range ss.Items() {
		junctable := 0
		for _, p := range strand.NEMids() {
			if p.Junctable {
				junctable++
				require.NotNil(t, p.Juncmate, "junctable implies a juncmate")
			}
		}
		assert.Greater(t, junctable, 0, "strand %s should have junctable NEMids", strand.Name)
	}
}

func TestJuncmateAndMatchingSymmetry(t *testing.T) {
	profile := wraparoundProfile()
	count := domains.HelixCount{Bottom: 0, Body: 8, Top: 0}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	engine := computeEngine(t, profile, template)

	ss, err := engine.Strands()
	require.NoError(t, err)

	for _, strand := range ss.Items() {
		for _, p := range strand.Items() {
			if p.Juncmate != nil {
				assert.Same(t, p, p.Juncmate.Juncmate)
			}
			if p.Matching != nil {
				assert.Same(t, p, p.Matching.Matching)
			}
		}
	}
}

func TestMatchingPairsAcrossTheDoubleHelix(t *testing.T) {
	profile := testProfile()
	count := domains.HelixCount{Bottom: 1, Body: 4, Top: 1}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	engine := computeEngine(t, profile, template)

	ss, err := engine.Strands()
	require.NoError(t, err)
	require.Equal(t, 2, ss.Len())

	up := ss.Items()[0]
	down := ss.Items()[1]

	upNEMids := up.NEMids()
	downNEMids := down.NEMids()
	n := len(upNEMids)
	if len(downNEMids) < n {
		n = len(downNEMids)
	}
	for i := 0; i < n; i++ {
		assert.Same(t, downNEMids[len(downNEMids)-1-i], upNEMids[i].Matching,
			"up NEMid %d pairs with the reverse-ordered down NEMid", i)
	}

	// Nucleosides carry the matching lookup too, so sequence edits can
	// write complements through it.
	for _, p := range up.Nucleosides() {
		if p.Matching != nil {
			assert.Equal(t, points.KindNucleoside, p.Matching.Kind)
		}
	}
}

func TestFractionalDistance(t *testing.T) {
	assert.InDelta(t, 0, fractionalDistance(3.25, 7.25), 1e-12)
	assert.InDelta(t, 0.01, fractionalDistance(0.005, 1.995), 1e-12)
	assert.InDelta(t, 0.2, fractionalDistance(0.1, 4.3), 1e-12)
}

func TestEngineValidatesProfile(t *testing.T) {
	bad := testProfile()
	bad.ZB = -1
	count := domains.HelixCount{Bottom: 0, Body: 2, Top: 0}
	template := []*domains.Domain{symmetricDomain(t, 0, geometry.Up, count)}
	_, err := New(mustDomains(t, template, 1, false), bad)
	assert.ErrorIs(t, err, geometry.ErrInvalidProfile)
}
