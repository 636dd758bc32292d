package session

import (
	"database/sql"
	"fmt"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

// pointKey addresses a point by its strand and item position within a saved
// session; the matching and juncmate references are persisted as keys rather
// than object references.
type pointKey struct {
	strand int
	item   int
}

// Save stores a strand set under the given session name, replacing any
// previous session of that name.
func (s *Store) Save(name string, ss *strands.Strands) error {
	if err := s.Delete(name); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	p := ss.Profile()
	if _, err := tx.Exec(
		`INSERT INTO sessions (name, uuid, theta_b, z_b, z_mate, g, b, d) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		name, ss.UUID(), p.ThetaB, p.ZB, p.ZMate, p.G, p.B, p.D,
	); err != nil {
		return fmt.Errorf("save session row: %w", err)
	}

	// First pass: index every point so cross-references can be persisted as
	// (strand, item) keys.
	keys := make(map[*points.Point]pointKey)
	for si, strand := range ss.Items() {
		for ii, item := range strand.Items() {
			keys[item] = pointKey{strand: si, item: ii}
		}
	}

	for si, strand := range ss.Items() {
		if _, err := tx.Exec(
			`INSERT INTO strands (session, idx, name, closed, color_r, color_g, color_b, auto_color, thickness, auto_thickness)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			name, si, strand.Name, strand.Closed,
			int(strand.Color[0]), int(strand.Color[1]), int(strand.Color[2]),
			strand.AutoColor, strand.Thickness, strand.AutoThickness,
		); err != nil {
			return fmt.Errorf("save strand %d: %w", si, err)
		}

		for ii, item := range strand.Items() {
			juncStrand, juncItem := refKey(keys, item.Juncmate)
			matchStrand, matchItem := refKey(keys, item.Matching)
			domainIdx := -1
			if item.Domain != nil {
				domainIdx = item.Domain.Index
			}
			if _, err := tx.Exec(
				`INSERT INTO points (session, strand_idx, item_idx, kind, direction, domain_idx,
					x, z, angle, base, junctable, junction,
					juncmate_strand, juncmate_item, matching_strand, matching_item)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				name, si, ii, item.Kind.String(), int(item.Direction), domainIdx,
				item.X, item.Z, item.Angle, item.Base.String(),
				item.Junctable, item.Junction,
				juncStrand, juncItem, matchStrand, matchItem,
			); err != nil {
				return fmt.Errorf("save point %d/%d: %w", si, ii, err)
			}
		}
	}

	return tx.Commit()
}

func refKey(keys map[*points.Point]pointKey, p *points.Point) (int, int) {
	if p == nil {
		return -1, -1
	}
	key, ok := keys[p]
	if !ok {
		return -1, -1
	}
	return key.strand, key.item
}

// Load restores a saved session. The domain list, when supplied, rewires the
// points' domain back-references by index; a nil list leaves them unset.
func (s *Store) Load(name string, domainList []*domains.Domain) (*strands.Strands, error) {
	byIndex := make(map[int]*domains.Domain, len(domainList))
	for _, d := range domainList {
		byIndex[d.Index] = d
	}

	profile, err := s.loadProfile(name)
	if err != nil {
		return nil, err
	}

	grid, refs, err := s.loadPoints(name, byIndex)
	if err != nil {
		return nil, err
	}

	// Second pass: resolve persisted keys back into object references.
	for key, ref := range refs {
		p := grid[key.strand][key.item]
		if ref.juncmate.strand >= 0 {
			p.Juncmate = grid[ref.juncmate.strand][ref.juncmate.item]
		}
		if ref.matching.strand >= 0 {
			p.Matching = grid[ref.matching.strand][ref.matching.item]
		}
	}

	return s.loadStrands(name, profile, grid)
}

type pointRefs struct {
	juncmate pointKey
	matching pointKey
}

func (s *Store) loadProfile(name string) (geometry.Profile, error) {
	var p geometry.Profile
	err := s.db.QueryRow(
		`SELECT theta_b, z_b, z_mate, g, b, d FROM sessions WHERE name = ?`, name,
	).Scan(&p.ThetaB, &p.ZB, &p.ZMate, &p.G, &p.B, &p.D)
	if err == sql.ErrNoRows {
		return p, fmt.Errorf("session %q not found", name)
	}
	if err != nil {
		return p, fmt.Errorf("load session %q: %w", name, err)
	}
	return p, nil
}

func (s *Store) loadPoints(name string, byIndex map[int]*domains.Domain) (map[int][]*points.Point, map[pointKey]pointRefs, error) {
	rows, err := s.db.Query(
		`SELECT strand_idx, item_idx, kind, direction, domain_idx,
			x, z, angle, base, junctable, junction,
			juncmate_strand, juncmate_item, matching_strand, matching_item
		 FROM points WHERE session = ? ORDER BY strand_idx, item_idx`, name)
	if err != nil {
		return nil, nil, fmt.Errorf("load points: %w", err)
	}
	defer rows.Close()

	grid := make(map[int][]*points.Point)
	refs := make(map[pointKey]pointRefs)

	for rows.Next() {
		var strandIdx, itemIdx, direction, domainIdx int
		var kind, base string
		var x, z, angle float64
		var junctable, junction bool
		var juncStrand, juncItem, matchStrand, matchItem int
		if err := rows.Scan(
			&strandIdx, &itemIdx, &kind, &direction, &domainIdx,
			&x, &z, &angle, &base, &junctable, &junction,
			&juncStrand, &juncItem, &matchStrand, &matchItem,
		); err != nil {
			return nil, nil, err
		}

		p := &points.Point{
			X: x, Z: z, Angle: angle,
			Direction: geometry.Direction(direction),
			Domain:    byIndex[domainIdx],
			Junctable: junctable,
			Junction:  junction,
		}
		if kind == points.KindNEMid.String() {
			p.Kind = points.KindNEMid
		} else {
			p.Kind = points.KindNucleoside
			if base != "" && base != "-" {
				p.Base = points.Base(base[0])
			}
		}

		grid[strandIdx] = append(grid[strandIdx], p)
		refs[pointKey{strand: strandIdx, item: itemIdx}] = pointRefs{
			juncmate: pointKey{strand: juncStrand, item: juncItem},
			matching: pointKey{strand: matchStrand, item: matchItem},
		}
	}
	return grid, refs, rows.Err()
}

func (s *Store) loadStrands(name string, profile geometry.Profile, grid map[int][]*points.Point) (*strands.Strands, error) {
	rows, err := s.db.Query(
		`SELECT idx, name, closed, color_r, color_g, color_b, auto_color, thickness, auto_thickness
		 FROM strands WHERE session = ? ORDER BY idx`, name)
	if err != nil {
		return nil, fmt.Errorf("load strands: %w", err)
	}
	defer rows.Close()

	var items []*strands.Strand
	for rows.Next() {
		var idx, r, g, b, thickness int
		var strandName string
		var closed, autoC, autoT bool
		if err := rows.Scan(&idx, &strandName, &closed, &r, &g, &b, &autoC, &thickness, &autoT); err != nil {
			return nil, err
		}
		strand := strands.New(profile, strandName, grid[idx]...)
		strand.Closed = closed
		strand.Color = [3]uint8{uint8(r), uint8(g), uint8(b)}
		strand.AutoColor = autoC
		strand.Thickness = thickness
		strand.AutoThickness = autoT
		items = append(items, strand)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return strands.NewStrands(profile, items), nil
}
