package main

import (
	"fmt"

	"github.com/dgallion1/nbweave/internal/compose"
	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/sectiontree"
	"github.com/spf13/cobra"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a notebook from a template and a selection",
	Long: `Composes a notebook by resolving a selection file against the section
structure of a template JSON file or an existing notebook. Without a
selection, a source notebook's sections are extracted to JSON instead.`,
	Args: cobra.NoArgs,
	RunE: runCompose,
}

var (
	composeNotebook  string
	composeTemplate  string
	composeSelection string
	composeOutput    string
	createSelection  bool
)

func init() {
	f := composeCmd.Flags()
	f.StringVarP(&composeNotebook, "notebook", "n", "", "input notebook (.ipynb) to use as the structural source")
	f.StringVarP(&composeTemplate, "template", "t", "", "template JSON file to use as the structural source")
	f.StringVarP(&composeSelection, "selection", "s", "", "selection file (.json or .yaml) describing the sections to include")
	f.StringVarP(&composeOutput, "output", "o", "", "path to save the composed notebook (default output.ipynb)")
	f.BoolVar(&createSelection, "create-selection", false, "write a skeleton selection file derived from the source instead")
	composeCmd.MarkFlagsMutuallyExclusive("notebook", "template")
	composeCmd.MarkFlagsOneRequired("notebook", "template")
}

func runCompose(cmd *cobra.Command, args []string) error {
	// Flag combinations are rejected before any file is touched.
	if composeTemplate != "" && composeSelection == "" && !createSelection {
		return fmt.Errorf("--selection is required when composing from a template")
	}

	sections, base, err := loadComposeSource()
	if err != nil {
		return err
	}

	if createSelection {
		out := base + "_selection.json"
		sel := compose.Skeleton(sections, false)
		if err := compose.SaveSelection(out, sel); err != nil {
			return err
		}
		fmt.Printf("Selection file saved to %s\n", out)
		return nil
	}

	if composeSelection == "" {
		// Notebook given without a selection: pure extraction to JSON.
		out := base + ".json"
		if err := sectiontree.SaveBare(out, sections); err != nil {
			return err
		}
		fmt.Printf("Sections extracted and saved to %s\n", out)
		return nil
	}

	sel, err := compose.LoadSelection(composeSelection)
	if err != nil {
		return err
	}
	cells, err := compose.NewComposer(sections).Compose(sel)
	if err != nil {
		return err
	}
	logger.Debug("composed notebook", "sections", len(sel), "cells", len(cells))

	output := composeOutput
	if output == "" {
		output = cfg.ComposeOutput
	}
	if err := notebook.Write(output, cells); err != nil {
		return err
	}
	fmt.Printf("Notebook composed and saved to %s\n", output)
	return nil
}

// loadComposeSource builds the template section tree from whichever source
// flag was given, along with the input's base name for derived outputs.
// A notebook source is parsed line by line so multi-heading markdown cells
// split into addressable sections.
func loadComposeSource() ([]*sectiontree.Section, string, error) {
	if composeTemplate != "" {
		sections, err := sectiontree.LoadTemplate(composeTemplate)
		if err != nil {
			return nil, "", err
		}
		return sections, baseName(composeTemplate, ".json"), nil
	}
	cells, err := notebook.Read(composeNotebook)
	if err != nil {
		return nil, "", err
	}
	sections := sectiontree.Extract(cells, sectiontree.EveryLine)
	return sections, baseName(composeNotebook, ".ipynb"), nil
}
