package label

import (
	"fmt"
	"strings"

	"github.com/ByLCY/richlabel/binding"
	"github.com/ByLCY/richlabel/layout"
	"github.com/ByLCY/richlabel/markup"
	"github.com/ByLCY/richlabel/renderer"
)

// AutoSize 决定标签是否根据文本尺寸调整自身大小。
type AutoSize int

const (
	AutoSizeNone AutoSize = iota
	AutoSizeVertical
	AutoSizeHorizontal
	AutoSizeBoth
)

// Style 是标签从主题继承的外观；标签自身的 Align/Padding/TextColor 可以覆盖它。
type Style struct {
	Font        string
	TextColor   layout.Color
	TextAlign   layout.Alignment
	TextPadding layout.Margin
}

// DefaultStyle 返回深灰色、左上对齐的默认外观。
func DefaultStyle(font string) Style {
	return Style{
		Font:      font,
		TextColor: layout.Color{R: 30, G: 30, B: 30, A: 255},
		TextAlign: layout.TopLeft,
	}
}

// Label 是支持富文本、自动换行、省略号与内嵌控件的文本控件。
//
// 影响排版的导出字段（Leading、Wrap、AutoEllipsis、Align、Padding、AutoSize）
// 在下一次 Update 时被比较，变化才会触发重新排版；影响元素流的内容
// （文本、标记开关、数据、翻译、字体）必须通过对应的 Set 方法修改。
type Label struct {
	Leading      int
	Wrap         bool
	AutoEllipsis bool
	AutoSize     AutoSize
	Align        layout.Alignment // AlignInherit 表示使用 Style.TextAlign
	Padding      *layout.Margin   // nil 表示使用 Style.TextPadding

	TextColor    layout.Color
	UseTextColor bool         // 为真时忽略标记中的颜色，统一使用 TextColor
	LinkColor    layout.Color // 鼠标悬停链接时的底色，A 为 0 表示不绘制

	// OnLinkClicked 在左键点击链接时以链接地址调用。
	OnLinkClicked func(href string)
	// OnWidgetRequest 为 [ctrl=key] 创建内嵌控件；返回 nil 表示跳过该引用。
	OnWidgetRequest layout.WidgetFactory

	style      Style
	original   string
	markup     bool
	data       any
	translator binding.Translator
	translate  bool

	size         layout.Point
	engine       *layout.Engine
	contentDirty bool
	children     []layout.Widget

	hot        bool
	mouse      layout.Point
	activeHref string
}

// New 创建一个使用 metrics 排版的标签。
func New(metrics layout.Metrics, style Style) *Label {
	l := &Label{
		AutoEllipsis: true,
		LinkColor:    layout.Color{R: 255, G: 255, B: 255, A: 64},
		style:        style,
		contentDirty: true,
	}
	l.engine = layout.NewEngine(metrics, layout.WithWidgets(l.requestWidget, l))
	return l
}

func (l *Label) requestWidget(key string) (layout.Widget, error) {
	if l.OnWidgetRequest == nil {
		return nil, nil
	}
	return l.OnWidgetRequest(key)
}

// Text 返回未经翻译与数据绑定的原始文本。
func (l *Label) Text() string { return l.original }

// SetText 设置文本；与当前文本相同则不做任何事。
func (l *Label) SetText(text string) {
	if text == l.original {
		return
	}
	l.original = text
	l.contentDirty = true
}

// SetMarkup 开启或关闭标记解析。
func (l *Label) SetMarkup(enabled bool) {
	if enabled == l.markup {
		return
	}
	l.markup = enabled
	l.contentDirty = true
}

// SetData 设置 ${path} 占位符的数据源。
func (l *Label) SetData(data any) {
	l.data = data
	l.contentDirty = true
}

// SetTranslator 设置翻译器，需配合 SetTranslate(true) 使用。
func (l *Label) SetTranslator(t binding.Translator) {
	l.translator = t
	if l.translate {
		l.contentDirty = true
	}
}

// SetTranslate 切换是否翻译文本；切换时总是从原始文本重新计算。
func (l *Label) SetTranslate(on bool) {
	if on == l.translate {
		return
	}
	l.translate = on
	l.contentDirty = true
}

// Style 返回当前外观。
func (l *Label) Style() Style { return l.style }

// SetStyle 替换外观，例如控件状态（悬停、禁用）变化时。
func (l *Label) SetStyle(s Style) {
	if s == l.style {
		return
	}
	if s.Font != l.style.Font {
		l.contentDirty = true
	}
	l.style = s
	l.engine.Invalidate()
}

// SetAlign 设置对齐方式。
func (l *Label) SetAlign(a layout.Alignment) { l.Align = a }

// SetWrap 设置是否自动换行。
func (l *Label) SetWrap(wrap bool) { l.Wrap = wrap }

// Size 返回标签盒子尺寸。
func (l *Label) Size() layout.Point { return l.size }

// SetSize 设置盒子尺寸；下一次 Update 时若与上次排版尺寸不同则重新排版。
func (l *Label) SetSize(size layout.Point) { l.size = size }

// Dirty 报告下一次 Update 是否会重新排版。
func (l *Label) Dirty() bool {
	return l.contentDirty || l.engine.Dirty() || l.config() != l.engine.Config()
}

// Invalidate 强制下一次 Update 重新排版。
func (l *Label) Invalidate() { l.engine.Invalidate() }

// ActiveHref 返回鼠标当前悬停的链接地址。
func (l *Label) ActiveHref() string { return l.activeHref }

// Widgets 返回内嵌控件表。
func (l *Label) Widgets() *layout.WidgetTable { return l.engine.Widgets() }

// TextSize 返回最近一次排版的文本尺寸（含内边距）。
func (l *Label) TextSize() layout.Point {
	if res := l.engine.Result(); res != nil {
		return res.TextSize
	}
	return layout.Point{}
}

// Lines 返回最近一次排版的行；调用方不应修改。
func (l *Label) Lines() []layout.Line {
	if res := l.engine.Result(); res != nil {
		return res.Lines
	}
	return nil
}

// Result 返回最近一次排版结果。
func (l *Label) Result() *layout.Result { return l.engine.Result() }

// Config 返回下一次排版将使用的配置。
func (l *Label) Config() layout.Config { return l.config() }

func (l *Label) config() layout.Config {
	pad := l.style.TextPadding
	if l.Padding != nil {
		pad = *l.Padding
	}
	return layout.Config{
		Wrap:         l.Wrap,
		Leading:      l.Leading,
		AutoEllipsis: l.AutoEllipsis && (l.AutoSize == AutoSizeNone || l.AutoSize == AutoSizeVertical),
		Align:        l.Align.Resolve(l.style.TextAlign).Resolve(layout.TopLeft),
		Padding:      pad,
		Size:         l.size,
	}
}

// displayText 依次应用翻译与数据绑定。
func (l *Label) displayText() string {
	text := l.original
	if l.translate && l.translator != nil {
		text = l.translator.Translate(text)
	}
	var escape func(string) string
	if l.markup {
		escape = escapeMarkup
	}
	return binding.InterpolateEscaped(text, l.data, escape)
}

func escapeMarkup(s string) string { return strings.ReplaceAll(s, "[", "[[") }

// Update 是每帧的后期更新：必要时重新生成元素流并排版，然后刷新悬停链接。
func (l *Label) Update() error {
	if l.contentDirty {
		els, err := markup.Tokenize(l.displayText(), markup.Options{Font: l.style.Font, Enabled: l.markup})
		if err != nil {
			return fmt.Errorf("标签文本无效: %w", err)
		}
		l.engine.SetElements(els)
		l.contentDirty = false
	}
	l.engine.SetConfig(l.config())
	res, err := l.engine.Layout()
	if err != nil {
		return err
	}
	if l.hot {
		l.activeHref = hrefAt(res, l.mouse)
	}
	return nil
}

// AutoSizeNow 按 AutoSize 把盒子调整为文本尺寸，并在尺寸变化后重新排版。
func (l *Label) AutoSizeNow() error {
	if err := l.Update(); err != nil {
		return err
	}
	ts := l.TextSize()
	size := l.size
	switch l.AutoSize {
	case AutoSizeVertical:
		size.Y = ts.Y
	case AutoSizeHorizontal:
		size.X = ts.X
	case AutoSizeBoth:
		size = ts
	default:
		return nil
	}
	if size == l.size {
		return nil
	}
	l.size = size
	return l.Update()
}

// MouseMove 记录鼠标位置（标签坐标）并更新悬停的链接。
func (l *Label) MouseMove(p layout.Point) {
	l.hot = true
	l.mouse = p
	l.activeHref = hrefAt(l.engine.Result(), p)
}

// MouseLeave 清除悬停状态。
func (l *Label) MouseLeave() {
	l.hot = false
	l.activeHref = ""
}

// Click 处理鼠标点击；只有左键（0）点中链接时才触发 OnLinkClicked，返回是否已处理。
func (l *Label) Click(button int) bool {
	if button != 0 || l.activeHref == "" || l.OnLinkClicked == nil {
		return false
	}
	l.OnLinkClicked(l.activeHref)
	return true
}

func hrefAt(res *layout.Result, p layout.Point) string {
	if el := res.HitTest(p); el != nil {
		return el.Href
	}
	return ""
}

// Draw 在 origin 处绘制标签；完全落在 clip 之外的元素被跳过。
// 链接带下划线，悬停的链接先画 LinkColor 底色。所有颜色都按 opacity 缩放。
func (l *Label) Draw(p renderer.Painter, origin layout.Point, clip layout.Rectangle, opacity float64) error {
	if l.Dirty() {
		if err := l.Update(); err != nil {
			return err
		}
	}
	for _, ln := range l.Lines() {
		for _, el := range ln.Elements {
			if el.Kind != layout.TextRun {
				continue
			}
			rect := el.Rectangle()
			rect.Min = rect.Min.Add(origin)
			if !rect.Intersects(clip) {
				continue
			}
			if el.IsLink && el.Href != "" && el.Href == l.activeHref && l.LinkColor.A > 0 {
				if err := p.FillRect(rect, l.LinkColor.WithOpacity(opacity)); err != nil {
					return err
				}
			}
			style := renderer.TextStyle{Color: l.colorOf(el).WithOpacity(opacity), Underline: el.IsLink}
			if err := p.DrawText(el.Text, rect.Min, el.Font, style); err != nil {
				return fmt.Errorf("绘制文本 %q 失败: %w", el.Text, err)
			}
		}
	}
	return nil
}

func (l *Label) colorOf(el layout.Element) layout.Color {
	if l.UseTextColor {
		return l.TextColor
	}
	if el.Color != nil {
		return *el.Color
	}
	return l.style.TextColor
}

// Children 返回当前挂在标签下的内嵌控件。
func (l *Label) Children() []layout.Widget { return l.children }

// Contains implements layout.WidgetHost.
func (l *Label) Contains(w layout.Widget) bool {
	for _, c := range l.children {
		if c == w {
			return true
		}
	}
	return false
}

// Attach implements layout.WidgetHost.
func (l *Label) Attach(w layout.Widget) { l.children = append(l.children, w) }

// Detach implements layout.WidgetHost.
func (l *Label) Detach(w layout.Widget) {
	for i, c := range l.children {
		if c == w {
			l.children = append(l.children[:i], l.children[i+1:]...)
			return
		}
	}
}
