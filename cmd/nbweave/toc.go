package main

import (
	"fmt"

	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/toc"
	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:   "toc <input_notebook> <output_notebook>",
	Short: "Generate a table of contents for a notebook",
	Long: `Scans every markdown cell for headings and inserts a numbered table of
contents immediately before the first heading. An existing generated TOC
is replaced. Notebooks without headings are written through unchanged.`,
	Args: cobra.ExactArgs(2),
	RunE: runTOC,
}

func runTOC(cmd *cobra.Command, args []string) error {
	cells, err := notebook.Read(args[0])
	if err != nil {
		return err
	}
	cells = toc.Refresh(cells)
	if err := notebook.Write(args[1], cells); err != nil {
		return err
	}
	fmt.Printf("Table of contents written to %s\n", args[1])
	return nil
}
