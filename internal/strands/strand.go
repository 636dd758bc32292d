// Package strands provides the traversable, mutable strand sequences derived
// from computed helices. A Strand owns its points; the helices that produced
// them retain no owning references.
package strands

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
)

// Side selects which end of a strand an operation applies to.
type Side int

const (
	Right Side = iota
	Left
)

// Strand is an ordered sequence of points with styling metadata and derived
// predicates. The predicates (UpStrand, DownStrand, Interdomain, CrossScreen)
// are recomputed lazily behind a dirty flag that every mutator sets; there is
// no implicit global caching.
type Strand struct {
	Name          string
	Closed        bool
	Color         [3]uint8
	AutoColor     bool
	Thickness     int
	AutoThickness bool
	Highlighted   bool

	profile geometry.Profile
	items   []*points.Point

	dirty       bool
	upStrand    bool
	downStrand  bool
	interdomain bool
	crossScreen bool
}

// New constructs a strand owning the given points and sets their strand
// back-references.
func New(profile geometry.Profile, name string, items ...*points.Point) *Strand {
	s := &Strand{
		Name:          name,
		AutoColor:     true,
		Thickness:     2,
		AutoThickness: true,
		profile:       profile,
		items:         append([]*points.Point(nil), items...),
		dirty:         true,
	}
	for _, item := range s.items {
		item.Strand = s
	}
	return s
}

// StrandName implements points.StrandRef.
func (s *Strand) StrandName() string { return s.Name }

// Items returns the strand's points in traversal order. The returned slice
// is the strand's own backing storage; callers must not reorder it.
func (s *Strand) Items() []*points.Point { return s.items }

// Len is the number of points in the strand.
func (s *Strand) Len() int { return len(s.items) }

// Empty reports whether the strand has no points.
func (s *Strand) Empty() bool { return len(s.items) == 0 }

// Append adds a point to the right end.
func (s *Strand) Append(p *points.Point) {
	p.Strand = s
	s.items = append(s.items, p)
	s.dirty = true
}

// AppendLeft adds a point to the left end.
func (s *Strand) AppendLeft(p *points.Point) {
	p.Strand = s
	s.items = append([]*points.Point{p}, s.items...)
	s.dirty = true
}

// Extend adds points to the right end in order.
func (s *Strand) Extend(items []*points.Point) {
	for _, p := range items {
		p.Strand = s
	}
	s.items = append(s.items, items...)
	s.dirty = true
}

// ExtendLeft adds points to the left end. The first supplied point ends up
// nearest the old left edge, mirroring a deque's extendleft.
func (s *Strand) ExtendLeft(items []*points.Point) {
	reversed := make([]*points.Point, len(items))
	for i, p := range items {
		p.Strand = s
		reversed[len(items)-1-i] = p
	}
	s.items = append(reversed, s.items...)
	s.dirty = true
}

// Trim removes count points from the right end.
func (s *Strand) Trim(count int) {
	if count > len(s.items) {
		count = len(s.items)
	}
	s.items = s.items[:len(s.items)-count]
	s.dirty = true
}

// TrimLeft removes count points from the left end.
func (s *Strand) TrimLeft(count int) {
	if count > len(s.items) {
		count = len(s.items)
	}
	s.items = s.items[count:]
	s.dirty = true
}

// NEMids returns only the strand's NEMid points.
func (s *Strand) NEMids() []*points.Point {
	var out []*points.Point
	for _, p := range s.items {
		if p.Kind == points.KindNEMid {
			out = append(out, p)
		}
	}
	return out
}

// Nucleosides returns only the strand's nucleoside points.
func (s *Strand) Nucleosides() []*points.Point {
	var out []*points.Point
	for _, p := range s.items {
		if p.Kind == points.KindNucleoside {
			out = append(out, p)
		}
	}
	return out
}

// Index returns the position of a point within the strand, or -1.
func (s *Strand) Index(p *points.Point) int {
	for i, item := range s.items {
		if item == p {
			return i
		}
	}
	return -1
}

// Touching reports whether any NEMid of this strand has a juncmate on the
// other strand.
func (s *Strand) Touching(other *Strand) bool {
	theirs := make(map[*points.Point]bool, other.Len())
	for _, p := range other.NEMids() {
		theirs[p] = true
	}
	for _, p := range s.NEMids() {
		if p.Juncmate != nil && theirs[p.Juncmate] {
			return true
		}
	}
	return false
}

// Generate extrapolates count additional NEMids (with their flanking
// nucleosides) off the right edge of the strand. The new points continue the
// edge point's arithmetic angle/z sequences exactly, so extension is
// indistinguishable from having computed a longer span in the first place.
func (s *Strand) Generate(count int, domain *domains.Domain) error {
	return s.generate(count, domain, Right)
}

// GenerateLeft extrapolates off the left edge of the strand.
func (s *Strand) GenerateLeft(count int, domain *domains.Domain) error {
	return s.generate(count, domain, Left)
}

func (s *Strand) generate(count int, domain *domains.Domain, side Side) error {
	if count == 0 {
		return nil
	}
	if s.Empty() {
		return fmt.Errorf("cannot generate points for an empty strand")
	}

	// The edge point and the sign of progression depend on the side.
	var edge *points.Point
	var modifier float64
	switch side {
	case Right:
		edge = s.items[len(s.items)-1]
		modifier = 1
	case Left:
		edge = s.items[0]
		modifier = -1
	default:
		return fmt.Errorf("invalid side: %d", side)
	}

	if domain == nil {
		domain = edge.Domain
	}

	thetaB := s.profile.ThetaB
	zB := s.profile.ZB

	initialAngle := edge.Angle + (thetaB/2)*modifier
	initialZ := edge.Z + (zB/2)*modifier
	finalAngle := initialAngle + float64(count+1)*thetaB*modifier
	finalZ := initialZ + float64(count+1)*zB*modifier

	angles := geometry.Arange(initialAngle, finalAngle, modifier*(thetaB/2))
	zs := geometry.Arange(initialZ, finalZ, modifier*(zB/2))

	xs := make([]float64, len(angles))
	for i, angle := range angles {
		xs[i] = domain.XFromAngle(angle, s.profile)
	}

	// Independently generated arithmetic sequences can disagree by one
	// sample; truncate to the shortest.
	n := len(angles)
	if len(zs) < n {
		n = len(zs)
	}
	if len(xs) < n {
		n = len(xs)
	}
	angles, xs, zs = angles[:n], xs[:n], zs[:n]
	if len(angles) != len(zs) || len(angles) != len(xs) {
		return fmt.Errorf("%w: %d angles, %d z coords, %d x coords",
			geometry.ErrLengthMismatch, len(angles), len(zs), len(xs))
	}

	// The point kinds continue the strand's alternation off the edge point.
	kind := points.KindNucleoside
	if edge.Kind == points.KindNucleoside {
		kind = points.KindNEMid
	}

	newItems := make([]*points.Point, n)
	for i := 0; i < n; i++ {
		var p *points.Point
		var err error
		if kind == points.KindNEMid {
			p, err = points.NewNEMid(xs[i], zs[i], angles[i], edge.Direction, domain)
		} else {
			p, err = points.NewNucleoside(xs[i], zs[i], angles[i], edge.Direction, domain)
		}
		if err != nil {
			return err
		}
		newItems[i] = p
		kind = otherKind(kind)
	}

	if side == Left {
		s.ExtendLeft(newItems)
	} else {
		s.Extend(newItems)
	}
	return nil
}

func otherKind(k points.Kind) points.Kind {
	if k == points.KindNEMid {
		return points.KindNucleoside
	}
	return points.KindNEMid
}

// Recompute refreshes the derived predicates. Mutators mark the strand dirty
// and the predicate accessors call this on demand.
func (s *Strand) Recompute() {
	nemids := s.NEMids()

	s.upStrand = true
	s.downStrand = true
	for _, p := range nemids {
		if p.Direction == geometry.Up {
			s.downStrand = false
		} else {
			s.upStrand = false
		}
	}

	s.interdomain = false
	if len(nemids) > 0 {
		first := nemids[0].Domain
		for _, p := range nemids {
			if p.Domain != first {
				s.interdomain = true
				break
			}
		}
	}

	s.crossScreen = false
	for _, p := range nemids {
		if p.Junction && p.Juncmate != nil && math.Abs(p.X-p.Juncmate.X) > 1 {
			s.crossScreen = true
			break
		}
	}

	s.dirty = false
}

func (s *Strand) refresh() {
	if s.dirty {
		s.Recompute()
	}
}

// UpStrand reports whether every NEMid in the strand points up.
func (s *Strand) UpStrand() bool { s.refresh(); return s.upStrand }

// DownStrand reports whether every NEMid in the strand points down.
func (s *Strand) DownStrand() bool { s.refresh(); return s.downStrand }

// Interdomain reports whether the strand spans multiple domains.
func (s *Strand) Interdomain() bool { s.refresh(); return s.interdomain }

// CrossScreen reports whether an active junction wraps across the screen.
func (s *Strand) CrossScreen() bool { s.refresh(); return s.crossScreen }

// Size is the strand's bounding-box width and height.
func (s *Strand) Size() (width, height float64) {
	if s.Empty() {
		return 0, 0
	}
	minX, maxX := s.items[0].X, s.items[0].X
	minZ, maxZ := s.items[0].Z, s.items[0].Z
	for _, p := range s.items[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minZ = math.Min(minZ, p.Z)
		maxZ = math.Max(maxZ, p.Z)
	}
	return maxX - minX, maxZ - minZ
}

// Sequence returns the bases of the strand's nucleosides in order.
func (s *Strand) Sequence() []points.Base {
	nucs := s.Nucleosides()
	out := make([]points.Base, len(nucs))
	for i, p := range nucs {
		out[i] = p.Base
	}
	return out
}

// SetSequence assigns bases to the strand's nucleosides and writes the
// complement through each nucleoside's matching partner.
func (s *Strand) SetSequence(sequence []points.Base) error {
	nucs := s.Nucleosides()
	if len(sequence) != len(nucs) {
		return fmt.Errorf("sequence length %d does not match nucleoside count %d",
			len(sequence), len(nucs))
	}
	for i, base := range sequence {
		nucs[i].Base = base
		if mate := nucs[i].Matching; mate != nil {
			mate.Base = base.Complement()
		}
	}
	return nil
}

// RandomSequence generates length random bases.
func RandomSequence(length int) []points.Base {
	out := make([]points.Base, length)
	for i := range out {
		out[i] = points.DNABases[rand.Intn(len(points.DNABases))]
	}
	return out
}

// RandomizeSequence assigns random bases. When overwrite is false only unset
// nucleosides are assigned. Complements are written through matching.
func (s *Strand) RandomizeSequence(overwrite bool) {
	for _, p := range s.Nucleosides() {
		if overwrite || p.Base == points.NoBase {
			p.Base = points.DNABases[rand.Intn(len(points.DNABases))]
			if mate := p.Matching; mate != nil {
				mate.Base = p.Base.Complement()
			}
		}
	}
}

// ClearSequence unsets every assigned base.
func (s *Strand) ClearSequence() {
	for _, p := range s.Nucleosides() {
		p.Base = points.NoBase
	}
}
