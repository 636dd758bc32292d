package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-tools/nanoweave/internal/domains"
	"github.com/lattice-tools/nanoweave/internal/lattice"
	"github.com/lattice-tools/nanoweave/internal/session"
)

func newExportCmd() *cobra.Command {
	var (
		outputFile  string
		format      string
		sessionName string
		latticeFile string
	)

	cmd := &cobra.Command{
		Use:   "export <store.duckdb>",
		Short: "Export a previously saved session from a DuckDB store",
		Example: `  nanoweave export designs.duckdb --session v1
  nanoweave export designs.duckdb --session v1 -f junctions --lattice lattice.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			// Domain back-references can only be rewired when the lattice
			// description is supplied alongside the store.
			var domainList []*domains.Domain
			if latticeFile != "" {
				domainSet, _, err := lattice.Load(latticeFile)
				if err != nil {
					return err
				}
				domainList = domainSet.All()
			}

			ss, err := store.Load(sessionName, domainList)
			if err != nil {
				return err
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
	cmd.Flags().StringVar(&sessionName, "session", "default", "Session name within the store")
	cmd.Flags().StringVar(&latticeFile, "lattice", "", "Lattice file used to rewire domain references")

	return cmd
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions <store.duckdb>",
		Short: "List the sessions saved in a DuckDB store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.Sessions()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}
