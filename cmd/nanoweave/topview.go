package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lattice-tools/nanoweave/internal/lattice"
)

func newTopViewCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "topview <lattice-file>",
		Short: "Compute the top-down projection of the lattice's domains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			domainSet, profile, err := lattice.Load(args[0])
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

			fmt.Fprintln(out, "#Domain\tU\tV")
			for i, coord := range domainSet.TopView(profile) {
				fmt.Fprintf(out, "%d\t%.6f\t%.6f\n", i, coord.U, coord.V)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
