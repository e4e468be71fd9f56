// Command nbweave composes, restructures, and annotates Jupyter notebooks
// built around heading-derived section trees.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/nbweave/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "nbweave",
	Short:         "Compose, restructure, and annotate Jupyter notebooks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg = config.Load()

	rootCmd.AddCommand(composeCmd, extractCmd, headingsCmd, tocCmd, importCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// baseName strips the directory and extension from a path, for deriving
// sibling output names next to the input file.
func baseName(path, ext string) string {
	return strings.TrimSuffix(filepath.Base(path), ext)
}
