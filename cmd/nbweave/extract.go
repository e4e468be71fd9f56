package main

import (
	"fmt"

	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/sectiontree"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <notebook>",
	Short: "Extract a notebook's section structure to a template JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractOutput string

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "path to save the template JSON (default template.json)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cells, err := notebook.Read(args[0])
	if err != nil {
		return err
	}
	// Only the first line of each markdown cell opens a section here; the
	// line-by-line variant is reserved for the compose pipeline.
	sections := sectiontree.Extract(cells, sectiontree.FirstLine)
	logger.Debug("extracted sections", "roots", len(sections), "cells", len(cells))

	output := extractOutput
	if output == "" {
		output = cfg.TemplateOutput
	}
	if err := sectiontree.SaveTemplate(output, sections); err != nil {
		return err
	}
	fmt.Printf("Sections extracted and saved to %s\n", output)
	return nil
}
