package helices

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

// DefaultPadding is added to every sequence's upper bound so the terminal
// nucleoside is not dropped by the exclusive-bound generation. It must stay
// well under half a point spacing in both z and angle units, or an extra
// sample appears and the helix no longer ends on a nucleoside.
const DefaultPadding = 0.01

// DefaultOverlapTolerance is the absolute coincidence tolerance, in lattice
// units, of the junction overlap test.
const DefaultOverlapTolerance = 0.01

// DoubleHelices orchestrates the cross-domain recurrence and the junction and
// matching assignment over one DoubleHelix per domain. It is the sole owner
// of the recurrence state: nothing outside it mutates helix coordinate
// arrays. Compute must run once before Strands.
type DoubleHelices struct {
	profile   geometry.Profile
	domainSet *domains.Domains
	items     []*DoubleHelix

	overlapTolerance float64
	logger           *zap.Logger
	uuid             string
}

// New allocates a double helix for every expanded domain.
func New(ds *domains.Domains, profile geometry.Profile) (*DoubleHelices, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	all := ds.All()
	items := make([]*DoubleHelix, len(all))
	for i, d := range all {
		items[i] = NewDoubleHelix(d)
	}
	return &DoubleHelices{
		profile:          profile,
		domainSet:        ds,
		items:            items,
		overlapTolerance: DefaultOverlapTolerance,
		logger:           zap.NewNop(),
		uuid:             uuid.NewString(),
	}, nil
}

// SetLogger sets the logger for pass timing messages.
func (dhs *DoubleHelices) SetLogger(l *zap.Logger) { dhs.logger = l }

// SetOverlapTolerance overrides the junction coincidence tolerance.
func (dhs *DoubleHelices) SetOverlapTolerance(tol float64) { dhs.overlapTolerance = tol }

// UUID is the container's generated identity.
func (dhs *DoubleHelices) UUID() string { return dhs.uuid }

// Profile returns the helical constants in use.
func (dhs *DoubleHelices) Profile() geometry.Profile { return dhs.profile }

// Len is the number of double helices.
func (dhs *DoubleHelices) Len() int { return len(dhs.items) }

// At returns the double helix at the given domain index.
func (dhs *DoubleHelices) At(i int) *DoubleHelix { return dhs.items[i] }

// Compute fills every helix's coordinate arrays. The recurrence is strictly
// sequential: each domain's anchor is read off the previous domain's finished
// right-joint helix, with domain 0 anchored at z = 0.
//
// padding is added to each sequence's upper bound to keep the terminal sample
// inside the exclusive-bound generation; DefaultPadding is a safe choice.
func (dhs *DoubleHelices) Compute(padding float64) error {
	thetaB := dhs.profile.ThetaB
	zB := dhs.profile.ZB

	for index, dh := range dhs.items {
		previous := dhs.items[(index-1+len(dhs.items))%len(dhs.items)]
		domain := dh.Domain

		// Anchor the domain. Domain 0 is the base case; every other domain
		// anchors at the z of the right-most (argmax-x) NEMid among the
		// first B NEMid samples of the previous domain's right-joint helix,
		// reduced modulo |Z_b * B| so anchors stay bounded and comparable
		// across domains sharing the same periodicity.
		var alignedZ float64
		if index > 0 {
			right := previous.RightJointHelix()
			xs := nemidSamples(right.Xs, dhs.profile.B)
			zs := nemidSamples(right.Zs, -1)
			if len(xs) == 0 {
				return fmt.Errorf("domain %d: previous domain produced no NEMid samples", index)
			}
			alignedZ = zs[floats.MaxIdx(xs)]
			alignedZ = geometry.Mod(alignedZ, math.Abs(zB*float64(dhs.profile.B)))
		}
		// The aligned angle is always zero at the left junction site.
		alignedAngle := 0.0

		// Reduce to the nearest point on or above the reference axis and
		// record how many whole steps that shifted us; the angular anchor
		// moves in lockstep.
		initialZ := geometry.Mod(alignedZ, zB)
		shifts := int(math.Round((initialZ - alignedZ) / zB))
		initialAngle := float64(shifts) * thetaB

		// Push the zeroed helix down by its bottom count plus the extra
		// half-spacing for the bottom nucleoside, then span up across all
		// three counts to the top nucleoside. Every helix starts and ends
		// with a nucleoside.
		zeroed := dh.ZeroedHelix()
		increments := float64(domain.LeftHelixCount.Bottom)
		initialZ = initialZ - increments*zB - zB/2
		initialAngle = geometry.Mod(initialAngle-increments*thetaB-thetaB/2, 360.0)

		span := float64(domain.LeftHelixCount.Total())
		finalZ := initialZ + span*zB
		finalAngle := initialAngle + span*thetaB

		zeroed.Zs = geometry.Arange(initialZ, finalZ+padding, zB/2)
		zeroed.Angles = geometry.Arange(initialAngle, finalAngle+padding, thetaB/2)
		zeroed.Xs = xsFromAngles(zeroed.Angles, domain, dhs.profile)
		if err := zeroed.checkLengths(); err != nil {
			return err
		}

		// Derive the other helix from the same anchor, offset by the switch
		// angle and the axial mate offset. The switch sign flips for a
		// down-direction other helix.
		other := dh.OtherHelix()
		switchSign := 1.0
		if other.Direction == geometry.Down {
			switchSign = -1.0
		}

		increments = float64(domain.OtherHelixCount.Bottom)
		initialAngle = alignedAngle +
			float64(shifts)*thetaB -
			switchSign*dhs.profile.G -
			increments*thetaB -
			thetaB/2
		initialZ = alignedZ +
			float64(shifts)*zB -
			switchSign*dhs.profile.ZMate -
			increments*zB -
			zB/2

		span = float64(domain.OtherHelixCount.Total())
		finalZ = initialZ + span*zB
		finalAngle = initialAngle + span*thetaB

		other.Zs = geometry.Arange(initialZ, finalZ+padding, zB/2)
		other.Angles = geometry.Arange(initialAngle, finalAngle+padding, thetaB/2)
		other.Xs = xsFromAngles(other.Angles, domain, dhs.profile)
		if err := other.checkLengths(); err != nil {
			return err
		}

		// Reverse the down helix so both helices index left-to-right in the
		// assembled strand sense.
		dh.DownHelix().Reverse()
	}

	return nil
}

// Strands derives the junction and matching topology and emits one strand per
// helix, packaged in a Strands container. Compute must have run first.
func (dhs *DoubleHelices) Strands() (*strands.Strands, error) {
	pairs := make([][2]*strands.Strand, len(dhs.items))
	for i, dh := range dhs.items {
		up, err := dh.UpHelix().Strand(dhs.profile)
		if err != nil {
			return nil, err
		}
		down, err := dh.DownHelix().Strand(dhs.profile)
		if err != nil {
			return nil, err
		}
		pairs[i] = [2]*strands.Strand{up, down}
	}

	start := time.Now()
	dhs.assignJunctability(pairs)
	dhs.logger.Debug("junctability assignment finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("domains", len(dhs.items)))

	start = time.Now()
	assignMatching(pairs)
	dhs.logger.Debug("matching assignment finished",
		zap.Duration("elapsed", time.Since(start)))

	flat := make([]*strands.Strand, 0, 2*len(pairs))
	for _, pair := range pairs {
		flat = append(flat, pair[0], pair[1])
	}
	out := strands.NewStrands(dhs.profile, flat)
	out.Style()
	return out, nil
}

// assignJunctability marks every NEMid that superposes a NEMid on a helix of
// the cyclically next double helix. The fractional-x check is a cheap
// prefilter: all true overlaps sit on the integer line, so comparing the
// fractional parts once discards almost every candidate before the full
// circular overlap test runs. Because the domain count is an integer, any
// pair within tolerance modulo the domain count is also within tolerance
// modulo 1, so the prefilter passes extra candidates through but never
// rejects a true overlap.
func (dhs *DoubleHelices) assignJunctability(pairs [][2]*strands.Strand) {
	width := float64(dhs.domainSet.Count())
	tol := dhs.overlapTolerance

	for index, pair := range pairs {
		next := pairs[(index+1)%len(pairs)]
		for _, s1 := range pair {
			for _, s2 := range next {
				items1 := s1.Items()
				items2 := s2.Items()
				for i := 1; i < len(items1); i += 2 {
					p1 := items1[i]
					for j := 1; j < len(items2); j += 2 {
						p2 := items2[j]
						if p1 == p2 {
							continue
						}
						if fractionalDistance(p1.X, p2.X) > tol {
							continue
						}
						if p1.Overlaps(p2, width, tol) {
							p1.Junctable = true
							p1.Juncmate = p2
							p2.Junctable = true
							p2.Juncmate = p1
						}
					}
				}
			}
		}
	}
}

// assignMatching pairs each point with the point directly across the double
// helix: the up strand's items zipped against the down strand's items of the
// same parity taken in reverse order. Both NEMids and nucleosides are paired
// so that sequence edits can write complements through the relation.
func assignMatching(pairs [][2]*strands.Strand) {
	for _, pair := range pairs {
		up := pair[0].Items()
		down := pair[1].Items()
		for parity := 0; parity < 2; parity++ {
			ups := everyOther(up, parity)
			downs := everyOther(down, parity)
			n := len(ups)
			if len(downs) < n {
				n = len(downs)
			}
			for i := 0; i < n; i++ {
				a := ups[i]
				b := downs[len(downs)-1-i]
				a.Matching = b
				b.Matching = a
			}
		}
	}
}

// fractionalDistance is the circular distance between the fractional parts
// of two x coordinates.
func fractionalDistance(a, b float64) float64 {
	d := math.Abs(geometry.Mod(a, 1) - geometry.Mod(b, 1))
	if d > 0.5 {
		d = 1 - d
	}
	return d
}

func everyOther(items []*points.Point, start int) []*points.Point {
	var out []*points.Point
	for i := start; i < len(items); i += 2 {
		out = append(out, items[i])
	}
	return out
}

// nemidSamples collects the NEMid-position samples (every second element
// starting at index 1) from a coordinate array, capped at max samples when
// max is non-negative.
func nemidSamples(xs []float64, max int) []float64 {
	var out []float64
	for i := 1; i < len(xs); i += 2 {
		if max >= 0 && len(out) == max {
			break
		}
		out = append(out, xs[i])
	}
	return out
}

func xsFromAngles(angles []float64, d *domains.Domain, p geometry.Profile) []float64 {
	out := make([]float64, len(angles))
	for i, angle := range angles {
		out[i] = d.XFromAngle(angle, p)
	}
	return out
}
