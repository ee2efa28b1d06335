package layout

import (
	"strings"
	"unicode"
)

// lineBuilder 把元素流排成行。所有坐标在这里都是相对内容区左上角的，
// 对齐与内边距由 finalize 统一处理。
type lineBuilder struct {
	metrics Metrics
	widgets *WidgetTable
	wrap    bool
	leading int
	limit   int

	x, y      int
	rowHeight int
	current   []Element
	lines     []Line

	// 最近一次封行是否由显式换行触发，以及该换行的字体（用于空行的行高回退）。
	afterBreak bool
	breakFont  string
}

// buildLines 实现行构建：非折行模式按显式换行分行，折行模式在词边界处贪心折行。
// 空元素流得到零行。
func buildLines(elements []Element, cfg Config, metrics Metrics, widgets *WidgetTable) ([]Line, error) {
	if len(elements) == 0 {
		return nil, nil
	}
	b := &lineBuilder{
		metrics: metrics,
		widgets: widgets,
		wrap:    cfg.Wrap,
		leading: cfg.Leading,
		limit:   cfg.limit(),
	}
	for _, el := range elements {
		var err error
		switch el.Kind {
		case LineBreak:
			err = b.explicitBreak(el)
		case WidgetRef:
			err = b.addWidget(el)
		default:
			if b.wrap {
				err = b.addWrappedRun(el)
			} else {
				err = b.addRun(el)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := b.finish(); err != nil {
		return nil, err
	}
	return b.lines, nil
}

func (b *lineBuilder) lineEmpty() bool { return len(b.current) == 0 }

func (b *lineBuilder) place(el Element, size Point) {
	el.Position = Point{X: b.x, Y: b.y}
	el.Size = size
	b.current = append(b.current, el)
	b.x += size.X
	b.rowHeight = max(b.rowHeight, size.Y)
	b.afterBreak = false
}

// seal 以行高底对齐本行元素，然后换到下一行。
func (b *lineBuilder) seal() {
	width := 0
	for i := range b.current {
		el := &b.current[i]
		el.Position.Y = b.y + b.rowHeight - el.Size.Y
		width += el.Size.X
	}
	b.lines = append(b.lines, Line{
		Elements: b.current,
		Width:    width,
		Y:        b.y,
		Height:   b.rowHeight,
	})
	b.current = nil
	b.x = 0
	b.y += b.rowHeight + b.leading
	b.rowHeight = 0
	b.afterBreak = false
}

// spaceHeight 返回单个空格在 font 下的高度，空行以此为行高。
func (b *lineBuilder) spaceHeight(font string) (int, error) {
	sz, err := b.metrics.Measure(" ", font)
	if err != nil {
		return 0, err
	}
	return sz.Y, nil
}

func (b *lineBuilder) explicitBreak(el Element) error {
	if b.lineEmpty() {
		h, err := b.spaceHeight(el.Font)
		if err != nil {
			return err
		}
		b.rowHeight = max(b.rowHeight, h)
	}
	b.seal()
	b.afterBreak = true
	b.breakFont = el.Font
	return nil
}

func (b *lineBuilder) finish() error {
	if b.lineEmpty() && b.afterBreak {
		h, err := b.spaceHeight(b.breakFont)
		if err != nil {
			return err
		}
		b.rowHeight = max(b.rowHeight, h)
	}
	b.seal()
	return nil
}

func (b *lineBuilder) addWidget(el Element) error {
	if b.widgets == nil {
		return nil
	}
	w, err := b.widgets.resolve(el.Key, Point{X: b.x, Y: b.y})
	if err != nil {
		return err
	}
	if w == nil {
		// 工厂没有提供控件：该位置直接省略
		return nil
	}
	size := w.Size()
	if b.wrap && !b.lineEmpty() && b.x+size.X >= b.limit {
		b.seal()
	}
	b.place(el, size)
	return nil
}

// blankRun 处理裁剪后为空的文本片段：不占宽度，但以空格高度撑起行高。
func (b *lineBuilder) blankRun(font string) error {
	h, err := b.spaceHeight(font)
	if err != nil {
		return err
	}
	b.rowHeight = max(b.rowHeight, h)
	return nil
}

// addRun 处理非折行模式下的文本片段。
func (b *lineBuilder) addRun(el Element) error {
	if b.lineEmpty() {
		el.Text = strings.TrimLeftFunc(el.Text, unicode.IsSpace)
	}
	if el.Text == "" {
		return b.blankRun(el.Font)
	}
	size, err := b.metrics.Measure(el.Text, el.Font)
	if err != nil {
		return err
	}
	b.place(el, size)
	return nil
}

// addWrappedRun 把文本片段按词追加到当前行，放不下时折行。
// 每行的第一个词即使超宽也强制放置，保证任何输入都能推进。
func (b *lineBuilder) addWrappedRun(el Element) error {
	var (
		acc     string
		accSize Point
		startX  = b.x
		placed  bool
	)
	flush := func() {
		if acc == "" {
			return
		}
		b.x = startX
		b.place(withText(el, acc), accSize)
		acc = ""
		placed = true
	}

	for _, word := range splitWords(el.Text) {
		if word == "" {
			continue
		}
		first := acc == "" && b.lineEmpty()
		if first {
			word = strings.TrimLeftFunc(word, unicode.IsSpace)
			if word == "" {
				continue
			}
		}
		size, err := b.metrics.Measure(acc+word, el.Font)
		if err != nil {
			return err
		}
		if first || startX+size.X < b.limit {
			acc += word
			accSize = size
			continue
		}

		trimmed := strings.TrimLeftFunc(word, unicode.IsSpace)
		if trimmed == "" {
			// 行尾放不下的纯空白直接丢弃，不产生空行
			continue
		}
		flush()
		b.seal()
		startX = b.x
		acc = trimmed
		if accSize, err = b.metrics.Measure(acc, el.Font); err != nil {
			return err
		}
	}
	flush()
	if !placed && b.lineEmpty() {
		return b.blankRun(el.Font)
	}
	return nil
}

func withText(el Element, text string) Element {
	el.Text = text
	return el
}

// splitWords 在“前一个字符非空白、后面跟着空白”的位置切分，
// 因此空白总是附着在其后的词上，例如 "hello world" → ["hello", " world"]。
func splitWords(s string) []string {
	var words []string
	start := 0
	prevSpace := true
	for i, r := range s {
		space := unicode.IsSpace(r)
		if space && !prevSpace && i > start {
			words = append(words, s[start:i])
			start = i
		}
		prevSpace = space
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
