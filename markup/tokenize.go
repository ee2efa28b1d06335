package markup

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ByLCY/richlabel/layout"
)

// Options 控制文本如何转换为元素流。
type Options struct {
	Font    string // 默认字体名
	Enabled bool   // 关闭时只识别 \n，方括号原样输出
}

// Tokenize 把标签文本转换为排版元素流。
// 未知标签按原文输出，多余的关闭标签被忽略，未关闭的标签作用到文本结尾。
func Tokenize(text string, opts Options) ([]layout.Element, error) {
	if !opts.Enabled {
		return plain(text, opts.Font), nil
	}
	doc, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("解析标记失败: %w", err)
	}
	t := &tokenizer{fonts: []string{opts.Font}}
	for _, node := range doc.Nodes {
		switch {
		case node.Newline:
			t.lineBreak()
		case node.Escape:
			t.text("[")
		case node.Text != nil:
			t.text(*node.Text)
		case node.Open != nil:
			t.open(node.Open)
		case node.Close != nil:
			t.close(node.Close)
		}
	}
	t.flush()
	return t.out, nil
}

func plain(text, font string) []layout.Element {
	if text == "" {
		return nil
	}
	var out []layout.Element
	for i, part := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		if i > 0 {
			out = append(out, layout.Element{Kind: layout.LineBreak, Font: font})
		}
		if part != "" {
			out = append(out, layout.Element{Kind: layout.TextRun, Text: part, Font: font})
		}
	}
	return out
}

type link struct {
	href  string
	start int // 链接内第一个元素在 out 中的下标
}

type tokenizer struct {
	out     []layout.Element
	pending strings.Builder
	colors  []*layout.Color
	fonts   []string
	links   []link
}

func (t *tokenizer) font() string { return t.fonts[len(t.fonts)-1] }

func (t *tokenizer) color() *layout.Color {
	if len(t.colors) == 0 {
		return nil
	}
	return t.colors[len(t.colors)-1]
}

func (t *tokenizer) text(s string) {
	t.pending.WriteString(strings.ReplaceAll(s, "\r", ""))
}

// flush 以当前样式输出累积的文本；样式变化前必须调用。
func (t *tokenizer) flush() {
	if t.pending.Len() == 0 {
		return
	}
	el := layout.Element{Kind: layout.TextRun, Text: t.pending.String(), Font: t.font(), Color: t.color()}
	if n := len(t.links); n > 0 {
		el.IsLink = true
		el.Href = t.links[n-1].href
	}
	t.out = append(t.out, el)
	t.pending.Reset()
}

func (t *tokenizer) lineBreak() {
	t.flush()
	t.out = append(t.out, layout.Element{Kind: layout.LineBreak, Font: t.font()})
}

func (t *tokenizer) open(tag *OpenTag) {
	switch tag.Name {
	case "br":
		t.lineBreak()
	case "color":
		t.flush()
		c, err := colorful.Hex(tag.Value)
		if err != nil {
			// 颜色无效时沿用当前颜色，保证关闭标签仍然配对
			t.colors = append(t.colors, t.color())
			return
		}
		r, g, b := c.RGB255()
		t.colors = append(t.colors, &layout.Color{R: int(r), G: int(g), B: int(b), A: 255})
	case "font":
		t.flush()
		name := tag.Value
		if name == "" {
			name = t.font()
		}
		t.fonts = append(t.fonts, name)
	case "url":
		t.flush()
		t.links = append(t.links, link{href: tag.Value, start: len(t.out)})
	case "ctrl", "widget":
		if tag.Value == "" {
			t.text(tag.Raw)
			return
		}
		t.flush()
		t.out = append(t.out, layout.Element{Kind: layout.WidgetRef, Key: tag.Value, Font: t.font()})
	default:
		t.text(tag.Raw)
	}
}

func (t *tokenizer) close(tag *CloseTag) {
	switch tag.Name {
	case "color":
		if len(t.colors) > 0 {
			t.flush()
			t.colors = t.colors[:len(t.colors)-1]
		}
	case "font":
		if len(t.fonts) > 1 {
			t.flush()
			t.fonts = t.fonts[:len(t.fonts)-1]
		}
	case "url":
		if len(t.links) == 0 {
			return
		}
		t.flush()
		l := t.links[len(t.links)-1]
		t.links = t.links[:len(t.links)-1]
		if l.href == "" {
			// [url]href[/url]：链接文本本身就是地址
			var href strings.Builder
			for _, el := range t.out[l.start:] {
				href.WriteString(el.Text)
			}
			for i := l.start; i < len(t.out); i++ {
				if t.out[i].Kind == layout.TextRun {
					t.out[i].Href = href.String()
				}
			}
		}
	case "br", "ctrl", "widget":
	default:
		t.text(tag.Raw)
	}
}
