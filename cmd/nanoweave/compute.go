package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-tools/nanoweave/internal/helices"
	"github.com/lattice-tools/nanoweave/internal/lattice"
	"github.com/lattice-tools/nanoweave/internal/output"
	"github.com/lattice-tools/nanoweave/internal/session"
	"github.com/lattice-tools/nanoweave/internal/strands"
)

func newComputeCmd() *cobra.Command {
	var (
		outputFile  string
		format      string
		padding     float64
		tolerance   float64
		randomize   bool
		storePath   string
		sessionName string
	)

	cmd := &cobra.Command{
		Use:   "compute <lattice-file>",
		Short: "Compute helix geometry and junction topology for a lattice",
		Example: `  nanoweave compute lattice.yaml
  nanoweave compute -f junctions lattice.yaml
  nanoweave compute --save designs.duckdb --session v1 lattice.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domainSet, profile, err := lattice.Load(args[0])
			if err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			engine, err := helices.New(domainSet, profile)
			if err != nil {
				return err
			}
			engine.SetLogger(logger)
			engine.SetOverlapTolerance(tolerance)

			if err := engine.Compute(padding); err != nil {
				return err
			}
			ss, err := engine.Strands()
			if err != nil {
				return err
			}

			if randomize {
				for _, s := range ss.Items() {
					s.RandomizeSequence(false)
				}
			}

			if storePath != "" {
				if err := saveSession(storePath, sessionName, ss); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Saved session %q to %s\n", sessionName, storePath)
			}

			out := os.Stdout
			if outputFile != "" {
				out, err = os.Create(outputFile)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer out.Close()
			}

			return writeStrands(out, format, ss)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "points", "Output format: points, junctions")
	cmd.Flags().Float64Var(&padding, "padding", helices.DefaultPadding, "Sequence bound padding")
	cmd.Flags().Float64Var(&tolerance, "tolerance", helices.DefaultOverlapTolerance, "Junction overlap tolerance")
	cmd.Flags().BoolVar(&randomize, "randomize", false, "Assign random base sequences")
	cmd.Flags().StringVar(&storePath, "save", "", "DuckDB store to save the computed session to")
	cmd.Flags().StringVar(&sessionName, "session", "default", "Session name within the store")

	return cmd
}

func saveSession(storePath, name string, ss *strands.Strands) error {
	store, err := session.Open(storePath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Save(name, ss)
}

func writeStrands(out *os.File, format string, ss *strands.Strands) error {
	switch format {
	case "points":
		writer := output.NewPointsWriter(out)
		if err := writer.WriteHeader(); err != nil {
			return err
		}
		if err := writer.WriteStrands(ss); err != nil {
			return err
		}
		return writer.Flush()
	case "junctions":
		writer := output.NewJunctionsWriter(out)
		if err := writer.WriteHeader(); err != nil {
			return err
		}
		if err := writer.WriteStrands(ss); err != nil {
			return err
		}
		return writer.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
