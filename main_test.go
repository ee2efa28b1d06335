package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ByLCY/richlabel/label"
)

func TestParseAutoSize(t *testing.T) {
	cases := map[string]label.AutoSize{"": label.AutoSizeNone, "vertical": label.AutoSizeVertical, "both": label.AutoSizeBoth}
	for in, want := range cases {
		got, err := parseAutoSize(in)
		if err != nil || got != want {
			t.Fatalf("parseAutoSize(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseAutoSize("diagonal"); err == nil {
		t.Fatalf("expected error for unknown autosize")
	}
}

func TestRunPDFWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	opts := options{
		text:     "Hello, [font=bold]${user}[/font]! [url=https://go.dev]go.dev[/url]",
		width:    200,
		height:   40,
		markup:   true,
		align:    "middle-center",
		padding:  "4 6",
		ellipsis: true,
		autoSize: "vertical",
		font:     "builtin:goregular",
		size:     12,
		data:     map[string]any{"user": "Gopher"},
		out:      filepath.Join(dir, "out", "label.pdf"),
		debug:    filepath.Join(dir, "debug", "layout.json"),
	}
	if err := runPDF(opts); err != nil {
		t.Fatalf("runPDF failed: %v", err)
	}
	pdf, err := os.ReadFile(opts.out)
	if err != nil || !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected a PDF file: %v", err)
	}
	raw, err := os.ReadFile(opts.debug)
	if err != nil {
		t.Fatalf("expected debug JSON: %v", err)
	}
	var dump struct {
		Config struct {
			Align string `json:"align"`
		} `json:"config"`
		Result struct {
			Lines []json.RawMessage `json:"lines"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("invalid debug JSON: %v", err)
	}
	if dump.Config.Align != "middle-center" || len(dump.Result.Lines) != 1 {
		t.Fatalf("unexpected debug dump: %+v", dump)
	}
}

func TestRunPDFRejectsBadAlignment(t *testing.T) {
	opts := options{align: "sideways", padding: "0", font: "builtin:goregular", size: 12, out: filepath.Join(t.TempDir(), "x.pdf")}
	if err := runPDF(opts); err == nil {
		t.Fatalf("expected alignment error")
	}
}

func TestPrintFontsListsRegisteredNames(t *testing.T) {
	var buf bytes.Buffer
	printFonts(&buf, newCanvasRenderer(options{font: "builtin:goregular", size: 12}))
	if got, want := buf.String(), "body\nbold\nitalic\nmono\n"; got != want {
		t.Fatalf("unexpected font list %q, want %q", got, want)
	}
}
