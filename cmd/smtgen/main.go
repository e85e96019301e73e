// Package main implements the smtgen developer CLI: capability table
// resolution and script diffing.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/provekit/smtgen/scriptdiff"
	"github.com/provekit/smtgen/solver"
)

var rootCmd = &cobra.Command{
	Use:          "smtgen",
	Short:        "smtgen - solver script tooling",
	SilenceUsage: true,
}

var (
	solverName    string
	solverVersion string
)

var capsCmd = &cobra.Command{
	Use:   "caps <table.yaml>",
	Short: "Resolve a capability table against a solver",
	Long: `Reads a YAML capability table and prints the capability set it
resolves to for the given solver name and version. Guard expressions in
the table are evaluated against --solver and --version.`,
	Args: cobra.ExactArgs(1),
	RunE: runCaps,
}

var diffCmd = &cobra.Command{
	Use:   "diff <a.smt2> <b.smt2>",
	Short: "Compare two rendered scripts line by line",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func runCaps(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	caps, err := solver.LoadCaps(data, solver.Info{Name: solverName, Version: solverVersion})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "solver: %s %s\n", solverName, solverVersion)
	fmt.Fprintf(out, "  dataTypes:       %v\n", caps.DataTypes)
	fmt.Fprintf(out, "  sets:            %v\n", caps.Sets)
	fmt.Fprintf(out, "  bitVectors:      %v\n", caps.BitVectors)
	fmt.Fprintf(out, "  pseudoBooleans:  %v\n", caps.PseudoBooleans)
	fmt.Fprintf(out, "  intToBV:         %v\n", caps.IntToBV)
	fmt.Fprintf(out, "  distinct:        %v\n", caps.Distinct)
	fmt.Fprintf(out, "  directAccessors: %v\n", caps.DirectAccessors)
	fmt.Fprintf(out, "  defineFun:       %v\n", caps.DefineFun)
	fmt.Fprintf(out, "  flattenedModels: %v\n", caps.FlattenedModels)
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	from, err := readLines(args[0])
	if err != nil {
		return err
	}
	to, err := readLines(args[1])
	if err != nil {
		return err
	}
	ops := scriptdiff.Diff(from, to)
	if scriptdiff.Equal(from, to) {
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), scriptdiff.Format(ops))
	return fmt.Errorf("scripts differ")
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func main() {
	capsCmd.Flags().StringVar(&solverName, "solver", "z3", "solver name the table is resolved against")
	capsCmd.Flags().StringVar(&solverVersion, "version", "", "solver version the table is resolved against")
	rootCmd.AddCommand(capsCmd, diffCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
