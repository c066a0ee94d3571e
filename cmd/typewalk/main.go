// Package main provides the typewalk CLI: inspect hierarchy manifests,
// snapshot resolved hierarchies into SQLite and diff snapshots against
// manifests to detect drift.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/typewalk/internal/ancestry"
	"github.com/funvibe/typewalk/internal/config"
	"github.com/funvibe/typewalk/internal/manifest"
	"github.com/funvibe/typewalk/internal/snapshot"
)

var rootCmd = &cobra.Command{
	Use:   "typewalk",
	Short: "Inspect and snapshot type-hierarchy manifests",
	Long: `typewalk resolves YAML hierarchy manifests into ordered ancestor lists,
prints them, stores them as SQLite snapshots and diffs snapshots against
manifests to detect hierarchy drift between builds.`,
	SilenceUsage: true,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest>",
	Short: "Print the ancestor chain of every type in a manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <manifest>",
	Short: "Store a resolved manifest as a SQLite snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

var diffCmd = &cobra.Command{
	Use:   "diff <snapshot-db> <manifest>",
	Short: "Diff a stored snapshot against a manifest",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "hierarchy.db", "snapshot database path")
	rootCmd.AddCommand(inspectCmd, snapshotCmd, diffCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveManifest(path string) ([]*ancestry.Descriptor, *ancestry.Universe, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	u := ancestry.NewUniverse()
	descs, err := m.Resolve(u)
	if err != nil {
		return nil, nil, err
	}
	return descs, u, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	descs, _, err := resolveManifest(args[0])
	if err != nil {
		return err
	}
	for _, d := range descs {
		fmt.Fprintln(cmd.OutOrStdout(), formatChain(d))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	_, u, err := resolveManifest(args[0])
	if err != nil {
		return err
	}
	store, err := snapshot.Open(snapshotOut)
	if err != nil {
		return err
	}
	defer store.Close()

	records := snapshot.FromUniverse(u)
	if err := store.Write(records); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d types to %s\n", len(records), snapshotOut)
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	store, err := snapshot.Open(args[0])
	if err != nil {
		return err
	}
	defer store.Close()

	old, err := store.Read()
	if err != nil {
		return err
	}
	_, u, err := resolveManifest(args[1])
	if err != nil {
		return err
	}

	changes := snapshot.Diff(old, snapshot.FromUniverse(u))
	if len(changes) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no changes")
		return nil
	}
	for _, c := range changes {
		fmt.Fprintln(cmd.OutOrStdout(), formatChange(c))
	}
	return fmt.Errorf("%d change(s) detected", len(changes))
}

// ANSI colors, gated on the output being a terminal.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func useColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func paint(s, color string) string {
	if !useColor() {
		return s
	}
	return color + s + colorReset
}

func formatChain(d *ancestry.Descriptor) string {
	names := make([]string, len(d.Refs))
	for i, e := range d.Refs {
		names[i] = e.Key.Name()
	}
	return fmt.Sprintf("%s: %s", paint(d.Name(), colorCyan), strings.Join(names, " -> "))
}

func formatChange(c snapshot.Change) string {
	switch c.Kind {
	case config.ChangeAdded:
		return paint("+ "+c.Name, colorGreen)
	case config.ChangeRemoved:
		return paint("- "+c.Name, colorRed)
	default:
		return paint("~ "+c.Name, colorYellow) + " " + c.Detail
	}
}
