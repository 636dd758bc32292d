// Package lattice parses YAML lattice descriptions into a domain set and a
// nucleic acid profile.
package lattice

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
)

// File is the on-disk lattice description.
type File struct {
	Profile      ProfileSpec  `yaml:"profile"`
	Symmetry     int          `yaml:"symmetry"`
	Antiparallel bool         `yaml:"antiparallel"`
	Domains      []DomainSpec `yaml:"domains"`
}

// ProfileSpec mirrors geometry.Profile with YAML keys. Zero-valued fields
// fall back to the default profile.
type ProfileSpec struct {
	ThetaB float64 `yaml:"theta_b"`
	ZB     float64 `yaml:"z_b"`
	ZMate  float64 `yaml:"z_mate"`
	G      float64 `yaml:"g"`
	B      int     `yaml:"b"`
	D      float64 `yaml:"d"`
}

// DomainSpec describes one template domain. Counts are [bottom, body, top].
type DomainSpec struct {
	LeftJoint             string `yaml:"left_joint"`
	RightJoint            string `yaml:"right_joint"`
	LeftHelixCount        [3]int `yaml:"left_helix_count"`
	OtherHelixCount       [3]int `yaml:"other_helix_count"`
	ThetaInteriorMultiple int    `yaml:"theta_interior_multiple"`
}

// Load reads and resolves a lattice description file.
func Load(path string) (*domains.Domains, geometry.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, geometry.Profile{}, fmt.Errorf("read lattice file: %w", err)
	}
	return Parse(data)
}

// Parse resolves a lattice description from YAML bytes.
func Parse(data []byte) (*domains.Domains, geometry.Profile, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, geometry.Profile{}, fmt.Errorf("parse lattice file: %w", err)
	}

	profile := f.Profile.resolve()
	if err := profile.Validate(); err != nil {
		return nil, geometry.Profile{}, err
	}

	if f.Symmetry == 0 {
		f.Symmetry = 1
	}

	template := make([]*domains.Domain, len(f.Domains))
	for i, spec := range f.Domains {
		d, err := spec.resolve(i)
		if err != nil {
			return nil, geometry.Profile{}, fmt.Errorf("domain %d: %w", i, err)
		}
		template[i] = d
	}

	ds, err := domains.NewDomains(template, f.Symmetry, f.Antiparallel)
	if err != nil {
		return nil, geometry.Profile{}, err
	}
	return ds, profile, nil
}

func (ps ProfileSpec) resolve() geometry.Profile {
	p := geometry.DefaultProfile()
	if ps.ThetaB != 0 {
		p.ThetaB = ps.ThetaB
	}
	if ps.ZB != 0 {
		p.ZB = ps.ZB
	}
	if ps.ZMate != 0 {
		p.ZMate = ps.ZMate
	}
	if ps.G != 0 {
		p.G = ps.G
	}
	if ps.B != 0 {
		p.B = ps.B
	}
	if ps.D != 0 {
		p.D = ps.D
	}
	return p
}

func (spec DomainSpec) resolve(index int) (*domains.Domain, error) {
	left, err := geometry.ParseDirection(spec.LeftJoint)
	if err != nil {
		return nil, fmt.Errorf("left_joint: %w", err)
	}
	right, err := geometry.ParseDirection(spec.RightJoint)
	if err != nil {
		return nil, fmt.Errorf("right_joint: %w", err)
	}
	multiple := spec.ThetaInteriorMultiple
	if multiple == 0 {
		multiple = 9
	}
	return domains.NewDomain(
		index,
		left, right,
		domains.HelixCount{Bottom: spec.LeftHelixCount[0], Body: spec.LeftHelixCount[1], Top: spec.LeftHelixCount[2]},
		domains.HelixCount{Bottom: spec.OtherHelixCount[0], Body: spec.OtherHelixCount[1], Top: spec.OtherHelixCount[2]},
		multiple,
	)
}
