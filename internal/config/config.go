// Package config supplies environment-driven defaults for the CLI. Flags
// always win over the environment; the environment wins over built-ins.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Default output paths per subcommand.
	ComposeOutput  string
	TemplateOutput string
	ImportOutput   string

	// PDF import
	PDFFallbackPdftotext bool
}

func Load() Config {
	return Config{
		ComposeOutput:  envOr("NBWEAVE_COMPOSE_OUTPUT", "output.ipynb"),
		TemplateOutput: envOr("NBWEAVE_TEMPLATE_OUTPUT", "template.json"),
		ImportOutput:   envOr("NBWEAVE_IMPORT_OUTPUT", "template.json"),

		PDFFallbackPdftotext: envBool("NBWEAVE_PDF_FALLBACK_PDFTOTEXT", true),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
