package layout

import (
	"errors"
	"fmt"
)

// ErrReentrant 表示在测量或控件工厂回调中再次调用了 Layout。
var ErrReentrant = errors.New("layout: 不允许在回调中重入排版")

// Compute 执行一次完整排版：行构建 → 截断（仅单行）→ 对齐。
// 它不依赖任何之前的排版状态；相同输入总是得到相同结果。
// widgets 可以为 nil，此时所有内嵌控件引用都被跳过。
func Compute(elements []Element, cfg Config, metrics Metrics, widgets *WidgetTable) (*Result, error) {
	if metrics == nil {
		return nil, fmt.Errorf("layout: 缺少字体度量 Metrics")
	}
	memo := NewMemoMetrics(metrics)
	input := append([]Element(nil), elements...)

	if widgets != nil {
		widgets.begin()
	}
	lines, err := buildLines(input, cfg, memo, widgets)
	if err != nil {
		return nil, fmt.Errorf("行构建失败: %w", err)
	}

	if !cfg.Wrap && cfg.AutoEllipsis && len(lines) == 1 {
		dropped, err := truncate(&lines[0], cfg, memo)
		if err != nil {
			return nil, fmt.Errorf("省略号截断失败: %w", err)
		}
		if widgets != nil && len(dropped) > 0 {
			kept := widgetKeys(lines[0].Elements)
			for _, key := range dropped {
				if !contains(kept, key) {
					delete(widgets.active, key)
				}
			}
		}
	}

	textSize := measureText(lines, cfg.Padding)
	finalize(lines, textSize, cfg.Size, cfg.Align.Resolve(TopLeft), cfg.Padding, widgets)
	if widgets != nil {
		widgets.sweep()
	}
	return &Result{Lines: lines, TextSize: textSize}, nil
}

// measureText 计算所有行的包围尺寸并加上内边距；零行时只有内边距。
func measureText(lines []Line, pad Margin) Point {
	var size Point
	for _, ln := range lines {
		size.X = max(size.X, ln.Width)
		size.Y = max(size.Y, ln.Y+ln.Height)
	}
	return size.Add(Point{X: pad.Horizontal(), Y: pad.Vertical()})
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// Engine 缓存最近一次排版结果，并用脏标记决定何时重新计算。
// 任一输入（元素、配置、盒子尺寸）变化都会置脏；只有完整排版成功后才清除。
// Engine 不是并发安全的，它属于单个控件并在帧循环中同步使用。
type Engine struct {
	metrics  Metrics
	widgets  *WidgetTable
	cfg      Config
	elements []Element
	result   *Result
	dirty    bool
	running  bool
}

// NewEngine 创建一个初始为脏状态的排版引擎。
func NewEngine(metrics Metrics, opts ...Option) *Engine {
	e := &Engine{metrics: metrics, dirty: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.widgets == nil {
		e.widgets = NewWidgetTable(nil, nil)
	}
	return e
}

// SetElements 替换元素流（引擎保存副本）。
func (e *Engine) SetElements(elements []Element) {
	e.elements = append([]Element(nil), elements...)
	e.dirty = true
}

// SetConfig 在配置变化时置脏。
func (e *Engine) SetConfig(cfg Config) {
	if cfg == e.cfg {
		return
	}
	e.cfg = cfg
	e.dirty = true
}

// SetSize 在盒子尺寸变化时置脏。
func (e *Engine) SetSize(size Point) {
	if size == e.cfg.Size {
		return
	}
	e.cfg.Size = size
	e.dirty = true
}

// Invalidate 强制下次访问时重新排版（例如样式状态变化）。
func (e *Engine) Invalidate() { e.dirty = true }

// Dirty 报告缓存是否过期。
func (e *Engine) Dirty() bool { return e.dirty }

// Config 返回当前配置。
func (e *Engine) Config() Config { return e.cfg }

// Widgets 返回内嵌控件表。
func (e *Engine) Widgets() *WidgetTable { return e.widgets }

// Result 返回缓存的结果，可能已经过期或为 nil；需要有效结果时请调用 Layout。
func (e *Engine) Result() *Result { return e.result }

// Layout 在脏状态下重新排版并返回结果。失败时保持脏状态，下一帧会重试。
// 返回的 Result 由引擎持有，调用方不应修改；需要修改时使用 Clone。
func (e *Engine) Layout() (*Result, error) {
	if e.running {
		return nil, ErrReentrant
	}
	if !e.dirty && e.result != nil {
		return e.result, nil
	}
	e.running = true
	defer func() { e.running = false }()

	res, err := Compute(e.elements, e.cfg, e.metrics, e.widgets)
	if err != nil {
		return nil, err
	}
	e.result = res
	e.dirty = false
	return res, nil
}
