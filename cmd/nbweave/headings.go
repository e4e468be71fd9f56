package main

import (
	"fmt"

	"github.com/dgallion1/nbweave/internal/headings"
	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/toc"
	"github.com/spf13/cobra"
)

var headingsCmd = &cobra.Command{
	Use:   "headings <input_notebook> [output_notebook]",
	Short: "Add or remove hierarchical numbers on markdown headings",
	Long: `Numbers markdown headings with dotted hierarchical prefixes (1, 1.1,
1.2, 2, ...). Already-numbered headings are left alone, so the pass is
idempotent. With --remove, numbering is stripped instead. The output
defaults to overwriting the input.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runHeadings,
}

var (
	headingsRemove bool
	headingsNoTOC  bool
)

func init() {
	f := headingsCmd.Flags()
	f.BoolVarP(&headingsRemove, "remove", "r", false, "remove numbering from headings instead of adding it")
	f.BoolVar(&headingsNoTOC, "no-toc", false, "don't regenerate the table of contents (if one exists)")
}

func runHeadings(cmd *cobra.Command, args []string) error {
	cells, err := notebook.Read(args[0])
	if err != nil {
		return err
	}

	// Checked before renumbering so a freshly inserted TOC reflects the
	// updated headings.
	hadTOC := toc.Exists(cells)

	var action string
	if headingsRemove {
		cells = headings.Denumber(cells)
		action = "Removed numbering from"
	} else {
		cells = headings.Number(cells)
		action = "Numbered headings saved to"
	}

	if hadTOC && !headingsNoTOC {
		cells = toc.Refresh(cells)
	}

	output := args[0]
	if len(args) == 2 {
		output = args[1]
	}
	if err := notebook.Write(output, cells); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", action, output)
	return nil
}
