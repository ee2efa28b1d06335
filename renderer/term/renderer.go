package termrenderer

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/ByLCY/richlabel/layout"
	"github.com/ByLCY/richlabel/renderer"
)

// Renderer 把排版结果画到 tcell 屏幕上：一个像素对应一个字符单元，每行高 1。
type Renderer struct {
	screen tcell.Screen
}

var _ renderer.Renderer = (*Renderer)(nil)

// New 绑定一个已初始化的屏幕。
func New(screen tcell.Screen) *Renderer { return &Renderer{screen: screen} }

// Measure 以终端列宽度量文本；字体名只影响绘制样式。
func (r *Renderer) Measure(text, font string) (layout.Point, error) {
	return layout.Point{X: runewidth.StringWidth(text), Y: 1}, nil
}

// DrawText 按字素簇逐格写入；超出屏幕的部分被丢弃。
func (r *Renderer) DrawText(text string, at layout.Point, font string, style renderer.TextStyle) error {
	w, h := r.screen.Size()
	if at.Y < 0 || at.Y >= h {
		return nil
	}
	st := fontStyle(tcell.StyleDefault.Foreground(toTcell(style.Color)), font)
	if style.Underline {
		st = st.Underline(true)
	}
	x := at.X
	g := uniseg.NewGraphemes(text)
	for g.Next() && x < w {
		runes := g.Runes()
		cw := runewidth.StringWidth(g.Str())
		if cw == 0 {
			continue
		}
		if x >= 0 {
			r.screen.SetContent(x, at.Y, runes[0], runes[1:], st)
		}
		x += cw
	}
	return nil
}

// FillRect 用背景色空格填充矩形。
func (r *Renderer) FillRect(rect layout.Rectangle, c layout.Color) error {
	st := tcell.StyleDefault.Background(toTcell(c))
	w, h := r.screen.Size()
	end := rect.Max()
	for y := max0(rect.Min.Y); y < min(end.Y, h); y++ {
		for x := max0(rect.Min.X); x < min(end.X, w); x++ {
			r.screen.SetContent(x, y, ' ', nil, st)
		}
	}
	return nil
}

func fontStyle(st tcell.Style, font string) tcell.Style {
	f := strings.ToLower(font)
	if strings.Contains(f, "bold") {
		st = st.Bold(true)
	}
	if strings.Contains(f, "italic") {
		st = st.Italic(true)
	}
	return st
}

func toTcell(c layout.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func max0(v int) int { return max(v, 0) }
