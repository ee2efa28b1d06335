package markup

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Newline", Pattern: `\r?\n`},
		{Name: "Escape", Pattern: `\[\[`},
		{Name: "Close", Pattern: `\[/[A-Za-z]+\]`},
		{Name: "Open", Pattern: `\[[A-Za-z]+(?:=[^\]\n]*)?\]`},
		{Name: "Text", Pattern: `[^\[\r\n]+|\[|\r`},
	})

	documentParser = participle.MustBuild[Document](
		participle.Lexer(markupLexer),
	)
)

// Document is the token-level AST of a label markup string. Tags are kept flat;
// nesting is resolved by Tokenize so that unbalanced markup still produces output.
type Document struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Nodes []*Node        `parser:"@@*"`
}

// Node is a single markup token.
type Node struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Newline bool           `parser:"  @Newline"`
	Escape  bool           `parser:"| @Escape"`
	Close   *CloseTag      `parser:"| @Close"`
	Open    *OpenTag       `parser:"| @Open"`
	Text    *string        `parser:"| @Text"`
}

// OpenTag captures `[name]` or `[name=value]`.
type OpenTag struct {
	Name  string
	Value string
	Raw   string
}

// Capture implements participle.Capture.
func (t *OpenTag) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("open tag capture requires value")
	}
	raw := values[0]
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	name, value, _ := strings.Cut(body, "=")
	*t = OpenTag{
		Name:  strings.ToLower(name),
		Value: strings.TrimSpace(value),
		Raw:   raw,
	}
	return nil
}

// CloseTag captures `[/name]`.
type CloseTag struct {
	Name string
	Raw  string
}

// Capture implements participle.Capture.
func (t *CloseTag) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("close tag capture requires value")
	}
	raw := values[0]
	*t = CloseTag{
		Name: strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(raw, "[/"), "]")),
		Raw:  raw,
	}
	return nil
}

// Parse parses markup into its token-level AST.
func Parse(input string) (*Document, error) {
	if input == "" {
		return &Document{}, nil
	}
	return documentParser.ParseString("", input)
}
