package notebook

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRead_StringAndArraySources(t *testing.T) {
	raw := `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": "# Title"},
  {"cell_type": "code", "metadata": {}, "execution_count": 3, "outputs": [], "source": ["import os\n", "print(os.getcwd())"]}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`
	path := filepath.Join(t.TempDir(), "in.ipynb")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cells, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Type != CellMarkdown || cells[0].Source != "# Title" {
		t.Errorf("unexpected first cell: %+v", cells[0])
	}
	want := "import os\nprint(os.getcwd())"
	if cells[1].Type != CellCode || cells[1].Source != want {
		t.Errorf("expected joined source %q, got %+v", want, cells[1])
	}
}

func TestRead_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ipynb")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("expected error for malformed notebook")
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	cells := []Cell{
		{Type: CellMarkdown, Source: "# Intro"},
		{Type: CellMarkdown, Source: "Some prose\nwith two lines."},
		{Type: CellCode, Source: "x = 1\nprint(x)"},
	}
	path := filepath.Join(t.TempDir(), "out.ipynb")
	if err := Write(path, cells); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(cells) {
		t.Fatalf("expected %d cells, got %d", len(cells), len(got))
	}
	for i := range cells {
		if got[i] != cells[i] {
			t.Errorf("cell[%d]: expected %+v, got %+v", i, cells[i], got[i])
		}
	}
}

func TestMarshal_Deterministic(t *testing.T) {
	cells := []Cell{
		{Type: CellMarkdown, Source: "# A"},
		{Type: CellCode, Source: "pass"},
	}
	a, err := Marshal(cells)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Marshal(cells)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("expected byte-identical output for identical cells")
	}
}

func TestMarshal_CodeCellShape(t *testing.T) {
	data, err := Marshal([]Cell{{Type: CellCode, Source: "pass"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"execution_count": null`) {
		t.Errorf("expected null execution_count, got %s", out)
	}
	if !strings.Contains(out, `"outputs": []`) {
		t.Errorf("expected empty outputs array, got %s", out)
	}
	if !strings.Contains(out, `"nbformat": 4`) {
		t.Errorf("expected nbformat 4, got %s", out)
	}
}
