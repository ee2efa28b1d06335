package markup_test

import (
	"testing"

	"github.com/ByLCY/richlabel/layout"
	"github.com/ByLCY/richlabel/markup"
)

func tokenize(t *testing.T, text string) []layout.Element {
	t.Helper()
	els, err := markup.Tokenize(text, markup.Options{Font: "body", Enabled: true})
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	return els
}

func TestTokenizePlainText(t *testing.T) {
	els := tokenize(t, "hello world")
	if len(els) != 1 || els[0].Kind != layout.TextRun || els[0].Text != "hello world" || els[0].Font != "body" {
		t.Fatalf("unexpected elements: %+v", els)
	}
}

func TestTokenizeStyles(t *testing.T) {
	els := tokenize(t, "a[color=#ff0000]b[font=big]c[/font][/color]d")
	if len(els) != 4 {
		t.Fatalf("expected 4 runs, got %d: %+v", len(els), els)
	}
	if els[0].Color != nil || els[3].Color != nil {
		t.Fatalf("text outside color tag should have no color")
	}
	red := layout.Color{R: 255, A: 255}
	if els[1].Color == nil || *els[1].Color != red || els[1].Font != "body" {
		t.Fatalf("b should be red body: %+v", els[1])
	}
	if els[2].Color == nil || *els[2].Color != red || els[2].Font != "big" {
		t.Fatalf("c should be red big: %+v", els[2])
	}
	if els[3].Font != "body" {
		t.Fatalf("font should be restored after close")
	}
}

func TestTokenizeShortHexColor(t *testing.T) {
	els := tokenize(t, "[color=#0f0]x[/color]")
	if len(els) != 1 || els[0].Color == nil || *els[0].Color != (layout.Color{G: 255, A: 255}) {
		t.Fatalf("unexpected color: %+v", els)
	}
}

func TestTokenizeBreaks(t *testing.T) {
	els := tokenize(t, "a\nb[br]c\r\nd")
	kinds := []layout.ElementKind{layout.TextRun, layout.LineBreak, layout.TextRun, layout.LineBreak, layout.TextRun, layout.LineBreak, layout.TextRun}
	if len(els) != len(kinds) {
		t.Fatalf("expected %d elements, got %d: %+v", len(kinds), len(els), els)
	}
	for i, k := range kinds {
		if els[i].Kind != k {
			t.Fatalf("element %d: expected %s, got %s", i, k, els[i].Kind)
		}
	}
}

func TestTokenizeLinks(t *testing.T) {
	els := tokenize(t, "see [url=https://example.com]docs[/url] or [url]https://go.dev[/url]")
	if len(els) != 4 {
		t.Fatalf("expected 4 runs, got %d: %+v", len(els), els)
	}
	if !els[1].IsLink || els[1].Href != "https://example.com" || els[1].Text != "docs" {
		t.Fatalf("bad explicit link: %+v", els[1])
	}
	if els[2].IsLink {
		t.Fatalf("text after link should not be a link")
	}
	if !els[3].IsLink || els[3].Href != "https://go.dev" {
		t.Fatalf("bad implicit link: %+v", els[3])
	}
}

func TestTokenizeWidgets(t *testing.T) {
	els := tokenize(t, "icon [ctrl=star] and [widget=gear]!")
	if len(els) != 5 {
		t.Fatalf("expected 5 elements, got %d: %+v", len(els), els)
	}
	if els[1].Kind != layout.WidgetRef || els[1].Key != "star" {
		t.Fatalf("bad ctrl ref: %+v", els[1])
	}
	if els[3].Kind != layout.WidgetRef || els[3].Key != "gear" {
		t.Fatalf("bad widget ref: %+v", els[3])
	}
}

func TestTokenizeLiteralsAndUnknownTags(t *testing.T) {
	els := tokenize(t, "[[x] [b]bold[/b] [ and [/color]")
	if len(els) != 1 {
		t.Fatalf("expected a single run, got %+v", els)
	}
	if want := "[x] [b]bold[/b] [ and "; els[0].Text != want {
		t.Fatalf("expected %q, got %q", want, els[0].Text)
	}
}

func TestTokenizeUnclosedTagRunsToEnd(t *testing.T) {
	els := tokenize(t, "[color=#00f]blue\nstill")
	if len(els) != 3 || els[2].Color == nil || els[2].Color.B != 255 {
		t.Fatalf("unclosed color should apply to end: %+v", els)
	}
}

func TestTokenizeDisabled(t *testing.T) {
	els, err := markup.Tokenize("[color=#f00]a[/color]\nb", markup.Options{Font: "body"})
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	if len(els) != 3 || els[0].Text != "[color=#f00]a[/color]" || els[1].Kind != layout.LineBreak || els[2].Text != "b" {
		t.Fatalf("disabled markup should only split on newlines: %+v", els)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if els := tokenize(t, ""); len(els) != 0 {
		t.Fatalf("empty text should produce no elements: %+v", els)
	}
}
