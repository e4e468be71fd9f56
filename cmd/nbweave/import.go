package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/nbweave/internal/importer"
	"github.com/dgallion1/nbweave/internal/sectiontree"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <document>",
	Short: "Build a template JSON from a Markdown, HTML, DOCX, or PDF file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var importOutput string

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "path to save the template JSON (default template.json)")
}

func runImport(cmd *cobra.Command, args []string) error {
	imp, err := importer.ForFile(args[0])
	if err != nil {
		return err
	}
	if pdf, ok := imp.(*importer.PDFImporter); ok {
		pdf.FallbackPdftotext = cfg.PDFFallbackPdftotext
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	sections, err := imp.Parse(f, filepath.Base(args[0]))
	if err != nil {
		return err
	}
	logger.Debug("imported document", "roots", len(sections))

	output := importOutput
	if output == "" {
		output = cfg.ImportOutput
	}
	if err := sectiontree.SaveTemplate(output, sections); err != nil {
		return err
	}
	fmt.Printf("Template imported and saved to %s\n", output)
	return nil
}
