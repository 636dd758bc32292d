package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/geometry"
	"github.com/lattice-tools/nanoweave/internal/points"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

func sampleStrands(t *testing.T) *strands.Strands {
	t.Helper()
	count := domains.HelixCount{Bottom: 0, Body: 2, Top: 0}
	d, err := domains.NewDomain(3, geometry.Up, geometry.Up, count, count, 9)
	require.NoError(t, err)

	profile := geometry.DefaultProfile()

	n, err := points.NewNucleoside(0.25, 0.166, 17.145, geometry.Up, d)
	require.NoError(t, err)
	n.Base = points.BaseC

	m1, err := points.NewNEMid(0.5, 0.332, 34.29, geometry.Up, d)
	require.NoError(t, err)
	m2, err := points.NewNEMid(0.5, 0.332, 34.29, geometry.Down, d)
	require.NoError(t, err)
	m1.Junctable = true
	m1.Juncmate = m2
	m2.Junctable = true
	m2.Juncmate = m1
	m1.Junction = true
	m2.Junction = true

	up := strands.New(profile, "Domain 3 up strand", n, m1)
	down := strands.New(profile, "Domain 3 down strand", m2)
	return strands.NewStrands(profile, []*strands.Strand{up, down})
}

func TestPointsWriter(t *testing.T) {
	ss := sampleStrands(t)

	var buf bytes.Buffer
	pw := NewPointsWriter(&buf)
	require.NoError(t, pw.WriteHeader())
	require.NoError(t, pw.WriteStrands(ss))
	require.NoError(t, pw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t,
		"#Strand\tIndex\tType\tDirection\tDomain\tX\tZ\tAngle\tBase\tJunctable\tJunction",
		lines[0])

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 11)
	assert.Equal(t, "Domain 3 up strand", fields[0])
	assert.Equal(t, "0", fields[1])
	assert.Equal(t, "3", fields[4])
	assert.Equal(t, "0.250000", fields[5])
	assert.Equal(t, "C", fields[8])
	assert.Equal(t, "false", fields[9])

	fields = strings.Split(lines[2], "\t")
	assert.Equal(t, "1", fields[1])
	assert.Equal(t, "true", fields[9])
	assert.Equal(t, "true", fields[10])
}

func TestJunctionsWriterDeduplicates(t *testing.T) {
	ss := sampleStrands(t)

	var buf bytes.Buffer
	jw := NewJunctionsWriter(&buf)
	require.NoError(t, jw.WriteHeader())
	require.NoError(t, jw.WriteStrands(ss))
	require.NoError(t, jw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// One header plus one row: the pair appears once even though both
	// endpoints are junctable.
	require.Len(t, lines, 2)

	assert.Equal(t, "#Domain\tMateDomain\tX\tZ\tMateX\tMateZ\tActive", lines[0])
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, "3", fields[0])
	assert.Equal(t, "3", fields[1])
	assert.Equal(t, "true", fields[6])
}

func TestJunctionsWriterSkipsNonJunctable(t *testing.T) {
	count := domains.HelixCount{Bottom: 0, Body: 2, Top: 0}
	d, err := domains.NewDomain(0, geometry.Up, geometry.Up, count, count, 9)
	require.NoError(t, err)
	m, err := points.NewNEMid(0.5, 0.332, 34.29, geometry.Up, d)
	require.NoError(t, err)

	profile := geometry.DefaultProfile()
	ss := strands.NewStrands(profile,
		[]*strands.Strand{strands.New(profile, "s", m)})

	var buf bytes.Buffer
	jw := NewJunctionsWriter(&buf)
	require.NoError(t, jw.WriteStrands(ss))
	require.NoError(t, jw.Flush())
	assert.Empty(t, buf.String())
}
