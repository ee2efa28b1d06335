package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/richlabel/fonts"
	"github.com/ByLCY/richlabel/layout"
	"github.com/ByLCY/richlabel/renderer"
)

// DefaultDPMM 对应 96 DPI：每毫米的像素数。
const DefaultDPMM = 96 / 25.4

// Renderer 通过 github.com/tdewolff/canvas 提供字体度量，并创建可导出为 PDF 的画布。
// 排版以像素为单位，canvas 以毫米为单位；两者之间用 DPMM 换算。
type Renderer struct {
	dpmm  float64
	fonts map[string]FontSpec

	fontMu   sync.Mutex
	families map[string]*fontFamilyEntry
}

var (
	_ layout.Metrics    = (*Renderer)(nil)
	_ renderer.Renderer = (*Frame)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// FontSpec 描述一个具名字体：来源、字号（pt）与字重/斜体。
type FontSpec struct {
	Src   string  `json:"src"` // "builtin:goregular" 或字体文件路径
	Size  float64 `json:"size"`
	Style string  `json:"style,omitempty"`
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts 按名称注册字体；键为空串的条目作为未注册名称的回退字体。
	Fonts map[string]FontSpec
	DPMM  float64
}

// New creates a canvas-based renderer.
func New(opts Options) *Renderer {
	r := &Renderer{
		dpmm:     opts.DPMM,
		fonts:    map[string]FontSpec{},
		families: map[string]*fontFamilyEntry{},
	}
	if r.dpmm <= 0 {
		r.dpmm = DefaultDPMM
	}
	for name, spec := range opts.Fonts {
		r.fonts[name] = spec
	}
	return r
}

// FontNames 返回已注册的字体名（已排序）。
func (r *Renderer) FontNames() []string {
	names := make([]string, 0, len(r.fonts))
	for name := range r.fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Measure 返回文本在指定字体下的像素尺寸：宽度为前进宽度，高度为字体行高，均向上取整。
// 未注册的字体测量为零尺寸，排版照常进行；字体文件无法加载才返回错误。
func (r *Renderer) Measure(text, font string) (layout.Point, error) {
	face, err := r.face(font, layout.Color{A: 255})
	if err != nil || face == nil {
		return layout.Point{}, err
	}
	width := 0.0
	if text != "" {
		width = face.TextWidth(text)
	}
	return layout.Point{
		X: r.toPx(width),
		Y: r.toPx(face.Metrics().LineHeight),
	}, nil
}

// NewFrame 创建一块像素尺寸为 size 的画布。
func (r *Renderer) NewFrame(size layout.Point) *Frame {
	w, h := r.toMm(size.X), r.toMm(size.Y)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	return &Frame{r: r, c: c, ctx: ctx, size: size}
}

func (r *Renderer) toPx(mm float64) int { return int(math.Ceil(mm*r.dpmm - 1e-9)) }
func (r *Renderer) toMm(px int) float64 { return float64(px) / r.dpmm }

func (r *Renderer) spec(font string) (FontSpec, bool) {
	if spec, ok := r.fonts[font]; ok {
		return spec, true
	}
	spec, ok := r.fonts[""]
	return spec, ok
}

// face 返回字体面；未注册且没有回退字体时返回 nil，调用方按“无字体”处理。
func (r *Renderer) face(font string, col layout.Color) (*canvas.FontFace, error) {
	spec, ok := r.spec(font)
	if !ok {
		return nil, nil
	}
	family, style, err := r.ensureFontFamily(spec)
	if err != nil {
		return nil, err
	}
	size := spec.Size
	if size <= 0 {
		size = 12
	}
	return family.Face(size, colorFromLayout(col), style, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(spec FontSpec) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := spec.Src + "|" + spec.Style
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.families[key]; ok {
		return entry.family, entry.style, nil
	}
	data, err := fonts.Load(spec.Src)
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	style := parseFontStyle(spec.Style)
	family := canvas.NewFontFamily(key)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, canvas.FontRegular, fmt.Errorf("加载字体 %s 失败: %w", spec.Src, err)
	}
	r.families[key] = &fontFamilyEntry{family: family, style: style}
	return family, style, nil
}

// Frame 是一块 canvas 画布，实现 renderer.Renderer，可导出为 PDF。
type Frame struct {
	r    *Renderer
	c    *canvas.Canvas
	ctx  *canvas.Context
	size layout.Point
}

// Size 返回画布的像素尺寸。
func (f *Frame) Size() layout.Point { return f.size }

// Measure 委托给所属的 Renderer。
func (f *Frame) Measure(text, font string) (layout.Point, error) { return f.r.Measure(text, font) }

// DrawText 以 at 为文本包围盒左上角绘制单行文本；未注册的字体不绘制。
func (f *Frame) DrawText(text string, at layout.Point, font string, style renderer.TextStyle) error {
	face, err := f.r.face(font, style.Color)
	if err != nil || face == nil {
		return err
	}
	// 基线位置：行顶加上字体上升部（均为 mm）
	x := f.r.toMm(at.X)
	baseline := f.r.toMm(at.Y) + face.Metrics().Ascent
	f.ctx.DrawText(x, baseline, canvas.NewTextLine(face, text, canvas.Left))
	if style.Underline && text != "" {
		width := f.r.toPx(face.TextWidth(text))
		line := layout.Rectangle{
			Min:  layout.Point{X: at.X, Y: f.r.toPx(baseline) + 1},
			Size: layout.Point{X: width, Y: 1},
		}
		return f.FillRect(line, style.Color)
	}
	return nil
}

// FillRect 填充一个像素矩形。
func (f *Frame) FillRect(rect layout.Rectangle, c layout.Color) error {
	if rect.Size.X <= 0 || rect.Size.Y <= 0 {
		return nil
	}
	f.ctx.SetFillColor(colorFromLayout(c))
	f.ctx.DrawPath(f.r.toMm(rect.Min.X), f.r.toMm(rect.Min.Y), canvas.Rectangle(f.r.toMm(rect.Size.X), f.r.toMm(rect.Size.Y)))
	return nil
}

// WritePDF 把画布写为单页 PDF。
func (f *Frame) WritePDF(w io.Writer) error {
	writer := pdf.New(w, f.r.toMm(f.size.X), f.r.toMm(f.size.Y), nil)
	f.c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

// PDF 返回画布的 PDF 字节。
func (f *Frame) PDF() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.WritePDF(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
}
