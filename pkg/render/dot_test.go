package render

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), DOTOptions{})

	if !strings.Contains(dot, "digraph G {") {
		t.Error("missing digraph header")
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("horizontal layout should rank left to right")
	}
	if !strings.Contains(dot, `"s1" -> "ev1" [label="go"];`) {
		t.Errorf("missing labeled edge:\n%s", dot)
	}
	// Backward edge is dashed and excluded from ranking
	if !strings.Contains(dot, `"ev1" -> "s1" [style=dashed, constraint=false];`) {
		t.Errorf("backward edge should be dashed with constraint=false:\n%s", dot)
	}
	// Event nodes are ovals
	if !strings.Contains(dot, "shape=oval") {
		t.Error("event node should be oval")
	}
}

func TestToDOTVertical(t *testing.T) {
	l := testLayout()
	l.Orientation = "vertical"

	dot := ToDOT(l, DOTOptions{})
	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("vertical layout should rank top to bottom")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testLayout(), DOTOptions{Detailed: true})
	if !strings.Contains(dot, "level: 1") {
		t.Errorf("detailed labels should include levels:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.00 200.00">` + "\n" + `</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="200"`) {
		t.Errorf("pt dimensions should be replaced with pixel values: %s", out)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	in := []byte(`<svg></svg>`)
	if got := string(normalizeViewBox(in)); got != `<svg></svg>` {
		t.Errorf("svg without viewBox should pass through: %s", got)
	}
}
