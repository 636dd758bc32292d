// Package output provides tab-delimited writers for computed geometry and
// junction topology.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/lattice-tools/nanoweave/internal/points"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

// PointsWriter writes every strand's points in tab-delimited format.
type PointsWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewPointsWriter creates a new point table writer.
func NewPointsWriter(w io.Writer) *PointsWriter {
	return &PointsWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Strand",
			"Index",
			"Type",
			"Direction",
			"Domain",
			"X",
			"Z",
			"Angle",
			"Base",
			"Junctable",
			"Junction",
		},
	}
}

// WriteHeader writes the header line.
func (pw *PointsWriter) WriteHeader() error {
	_, err := pw.w.WriteString(strings.Join(pw.columns, "\t") + "\n")
	return err
}

// WriteStrands writes every point of every strand.
func (pw *PointsWriter) WriteStrands(ss *strands.Strands) error {
	for _, strand := range ss.Items() {
		for i, p := range strand.Items() {
			if err := pw.write(strand, i, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func (pw *PointsWriter) write(strand *strands.Strand, index int, p *points.Point) error {
	domain := -1
	if p.Domain != nil {
		domain = p.Domain.Index
	}
	_, err := fmt.Fprintf(pw.w, "%s\t%d\t%s\t%s\t%d\t%.6f\t%.6f\t%.6f\t%s\t%t\t%t\n",
		strand.Name, index, p.Kind, p.Direction, domain,
		p.X, p.Z, p.Angle, p.Base, p.Junctable, p.Junction)
	return err
}

// Flush flushes buffered output.
func (pw *PointsWriter) Flush() error {
	return pw.w.Flush()
}

// JunctionsWriter writes each detected junction candidate pair once.
type JunctionsWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewJunctionsWriter creates a new junction table writer.
func NewJunctionsWriter(w io.Writer) *JunctionsWriter {
	return &JunctionsWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Domain",
			"MateDomain",
			"X",
			"Z",
			"MateX",
			"MateZ",
			"Active",
		},
	}
}

// WriteHeader writes the header line.
func (jw *JunctionsWriter) WriteHeader() error {
	_, err := jw.w.WriteString(strings.Join(jw.columns, "\t") + "\n")
	return err
}

// WriteStrands writes every junctable pair exactly once.
func (jw *JunctionsWriter) WriteStrands(ss *strands.Strands) error {
	seen := make(map[*points.Point]bool)
	for _, strand := range ss.Items() {
		for _, p := range strand.NEMids() {
			if !p.Junctable || p.Juncmate == nil || seen[p] {
				continue
			}
			seen[p] = true
			seen[p.Juncmate] = true

			domain, mateDomain := -1, -1
			if p.Domain != nil {
				domain = p.Domain.Index
			}
			if p.Juncmate.Domain != nil {
				mateDomain = p.Juncmate.Domain.Index
			}
			if _, err := fmt.Fprintf(jw.w, "%d\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t%t\n",
				domain, mateDomain, p.X, p.Z,
				p.Juncmate.X, p.Juncmate.Z, p.Junction); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes buffered output.
func (jw *JunctionsWriter) Flush() error {
	return jw.w.Flush()
}
