// Package main provides the nanoweave command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nanoweave",
		Short: "Design DNA nanotube lattices",
		Long: `nanoweave computes helical point geometry and crossover topology for
DNA nanotube lattices described by a YAML lattice file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newComputeCmd())
	root.AddCommand(newTopViewCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newSessionsCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nanoweave version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// initConfig loads ~/.nanoweave.yaml when present.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.SetConfigName(".nanoweave")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.SetEnvPrefix("NANOWEAVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds the logger passed to the engine: a development logger when
// --verbose is set, a no-op logger otherwise.
func newLogger() (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
