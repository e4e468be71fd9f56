package headings

import (
	"reflect"
	"testing"

	"github.com/dgallion1/nbweave/internal/notebook"
)

func md(source string) notebook.Cell {
	return notebook.Cell{Type: notebook.CellMarkdown, Source: source}
}

func sources(cells []notebook.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Source
	}
	return out
}

func TestNumber_Hierarchy(t *testing.T) {
	cells := []notebook.Cell{
		md("# Intro"),
		md("## Setup"),
		md("## Config"),
		md("# Usage"),
		md("## Examples"),
	}
	got := sources(Number(cells))
	want := []string{
		"# 1 Intro",
		"## 1.1 Setup",
		"## 1.2 Config",
		"# 2 Usage",
		"## 2.1 Examples",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNumber_DeeperLevelsReset(t *testing.T) {
	cells := []notebook.Cell{
		md("# A"),
		md("## B"),
		md("### C"),
		md("### D"),
		md("## E"),
		md("### F"),
	}
	got := sources(Number(cells))
	want := []string{
		"# 1 A",
		"## 1.1 B",
		"### 1.1.1 C",
		"### 1.1.2 D",
		"## 1.2 E",
		"### 1.2.1 F",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNumber_Idempotent(t *testing.T) {
	cells := []notebook.Cell{
		md("# Intro"),
		md("## Setup"),
		{Type: notebook.CellCode, Source: "# shell comment, not a heading"},
	}
	once := Number(cells)
	twice := Number(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected numbering to be idempotent, got %q then %q", sources(once), sources(twice))
	}
}

func TestNumber_SkipsAlreadyNumbered(t *testing.T) {
	// A pre-numbered heading is left alone even among unnumbered siblings.
	cells := []notebook.Cell{
		md("# 7 Legacy"),
		md("# Fresh"),
	}
	got := sources(Number(cells))
	want := []string{"# 7 Legacy", "# 1 Fresh"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNumber_MultiHeadingCell(t *testing.T) {
	cells := []notebook.Cell{
		md("# Top\nbody text\n## Inner"),
	}
	got := sources(Number(cells))
	want := []string{"# 1 Top\nbody text\n## 1.1 Inner"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNumber_UnseenShallowLevelRendersZero(t *testing.T) {
	// A notebook starting at level 2 has no level-1 counter yet.
	got := sources(Number([]notebook.Cell{md("## Orphan")}))
	want := []string{"## 0.1 Orphan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDenumber(t *testing.T) {
	cells := []notebook.Cell{
		md("# 1 Intro"),
		md("## 1.2.3 Deep"),
		md("# Plain"),
		md("not a heading 1.2"),
	}
	got := sources(Denumber(cells))
	want := []string{"# Intro", "## Deep", "# Plain", "not a heading 1.2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDenumberNumber_Inverse(t *testing.T) {
	orig := []notebook.Cell{
		md("# Intro"),
		md("Some prose."),
		md("## Setup"),
		{Type: notebook.CellCode, Source: "x = 1"},
		md("# Usage"),
	}
	got := Denumber(Number(orig))
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("expected denumber(number(nb)) == nb, got %q", sources(got))
	}
}

func TestNumber_CountersScopedPerCall(t *testing.T) {
	cells := []notebook.Cell{md("# Solo")}
	first := sources(Number(cells))
	second := sources(Number(cells))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("counters leaked across calls: %q vs %q", first, second)
	}
	if first[0] != "# 1 Solo" {
		t.Errorf("expected %q, got %q", "# 1 Solo", first[0])
	}
}
