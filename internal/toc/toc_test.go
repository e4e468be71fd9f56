package toc

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/nbweave/internal/notebook"
)

func md(source string) notebook.Cell {
	return notebook.Cell{Type: notebook.CellMarkdown, Source: source}
}

func code(source string) notebook.Cell {
	return notebook.Cell{Type: notebook.CellCode, Source: source}
}

func TestScan_EveryLineOfEveryCell(t *testing.T) {
	cells := []notebook.Cell{
		md("# One\nprose\n## Two"),
		code("# not scanned"),
		md("### Three"),
	}
	got := Scan(cells)
	want := []Heading{{1, "One"}, {2, "Two"}, {3, "Three"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestScan_NoSpaceStillCounts(t *testing.T) {
	// The TOC scan is looser than the section extractor: a '#' run with
	// no following space is still a heading here.
	got := Scan([]notebook.Cell{md("##Tight")})
	want := []Heading{{2, "Tight"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestFormat_Numbering(t *testing.T) {
	// Levels 1,2,2,1,2 number as 1, 1.1, 1.2, 2, 2.1: the deeper counter
	// restarts at 1 after the second level-1 heading.
	headings := []Heading{
		{1, "Intro"},
		{2, "Setup"},
		{2, "Config"},
		{1, "Usage"},
		{2, "Examples"},
	}
	got := Format(headings)
	want := "Table of Contents <a class=\"jp-toc-ignore\"></a>\n=================" +
		"\n* [1 Intro](#intro)" +
		"\n  * [1.1 Setup](#setup)" +
		"\n  * [1.2 Config](#config)" +
		"\n* [2 Usage](#usage)" +
		"\n  * [2.1 Examples](#examples)"
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormat_AnchorDerivation(t *testing.T) {
	got := Format([]Heading{{1, "My Heading Name"}})
	if !strings.Contains(got, "](#my-heading-name)") {
		t.Errorf("expected lowercased hyphenated anchor, got %s", got)
	}
}

func TestInsert_BeforeFirstHeadingCell(t *testing.T) {
	cells := []notebook.Cell{
		code("import os"),
		md("just prose"),
		md("# First"),
		md("# Second"),
	}
	got := Insert(cells, "TOC")
	if len(got) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(got))
	}
	if got[2].Source != "TOC" {
		t.Errorf("expected TOC at index 2, got %q", got[2].Source)
	}
	if got[3].Source != "# First" {
		t.Errorf("expected original heading cell pushed to index 3, got %q", got[3].Source)
	}
}

func TestInsert_NoHeadingsNoInsert(t *testing.T) {
	cells := []notebook.Cell{md("prose"), code("x = 1")}
	got := Insert(cells, "TOC")
	if !reflect.DeepEqual(got, cells) {
		t.Errorf("expected cells unchanged, got %+v", got)
	}
}

func TestExistsAndRemove(t *testing.T) {
	toc := md("Table of Contents <a class=\"jp-toc-ignore\"></a>\n=================\n* [1 A](#a)")
	cells := []notebook.Cell{toc, md("# A")}

	if !Exists(cells) {
		t.Error("expected Exists to detect the marker")
	}
	removed := RemoveExisting(cells)
	if len(removed) != 1 || removed[0].Source != "# A" {
		t.Errorf("expected only the heading cell to remain, got %+v", removed)
	}
	if Exists(removed) {
		t.Error("expected marker gone after removal")
	}
	// Without a marker the cells pass through untouched.
	if got := RemoveExisting(removed); !reflect.DeepEqual(got, removed) {
		t.Errorf("expected no-op removal, got %+v", got)
	}
}

func TestRefresh_ReplacesExistingTOC(t *testing.T) {
	cells := []notebook.Cell{
		md("# Intro"),
		md("## Setup"),
	}
	once := Refresh(cells)
	if len(once) != 3 {
		t.Fatalf("expected 3 cells after refresh, got %d", len(once))
	}
	if !strings.Contains(once[0].Source, Marker) {
		t.Errorf("expected TOC cell first, got %q", once[0].Source)
	}

	twice := Refresh(once)
	if !reflect.DeepEqual(once, twice) {
		t.Error("expected refresh to be stable when headings don't change")
	}

	count := 0
	for _, c := range twice {
		if strings.Contains(c.Source, Marker) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one TOC cell, got %d", count)
	}
}

func TestRefresh_NoHeadings(t *testing.T) {
	cells := []notebook.Cell{md("prose only")}
	got := Refresh(cells)
	if !reflect.DeepEqual(got, cells) {
		t.Errorf("expected cells unchanged, got %+v", got)
	}
}
