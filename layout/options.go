package layout

// Config 描述一次排版所需的全部参数；任何字段变化都会让 Engine 变脏。
type Config struct {
	Wrap         bool      `json:"wrap"`
	Leading      int       `json:"leading"`      // 行间额外间距
	AutoEllipsis bool      `json:"autoEllipsis"` // 单行且不折行时启用省略号
	Align        Alignment `json:"align"`
	Padding      Margin    `json:"padding"`
	Size         Point     `json:"size"` // 盒子尺寸
}

// limit 返回可用的内容宽度。
func (c Config) limit() int { return c.Size.X - c.Padding.Horizontal() }

// Metrics 负责测量字符串在给定字体下的像素尺寸。
// 未知字体应尽量返回估算值；空字体名表示“无字体”，通常返回零尺寸。
type Metrics interface {
	Measure(text string, font string) (Point, error)
}

// MetricsFunc 让普通函数满足 Metrics 接口。
type MetricsFunc func(text string, font string) (Point, error)

// Measure 实现 Metrics。
func (f MetricsFunc) Measure(text, font string) (Point, error) { return f(text, font) }

type measureKey struct {
	text string
	font string
}

// MemoMetrics 在一次排版内缓存 (text, font) 的测量结果；换行算法会反复测量相同前缀。
type MemoMetrics struct {
	inner Metrics
	cache map[measureKey]Point
}

// NewMemoMetrics 包装 inner。
func NewMemoMetrics(inner Metrics) *MemoMetrics {
	return &MemoMetrics{inner: inner, cache: map[measureKey]Point{}}
}

// Measure 实现 Metrics；错误不缓存。
func (m *MemoMetrics) Measure(text, font string) (Point, error) {
	key := measureKey{text: text, font: font}
	if p, ok := m.cache[key]; ok {
		return p, nil
	}
	p, err := m.inner.Measure(text, font)
	if err != nil {
		return Point{}, err
	}
	m.cache[key] = p
	return p, nil
}

// Option 配置 Engine。
type Option func(*Engine)

// WithWidgets 为 Engine 提供内嵌控件工厂与宿主树。
func WithWidgets(factory WidgetFactory, host WidgetHost) Option {
	return func(e *Engine) { e.widgets = NewWidgetTable(factory, host) }
}

// WithConfig 设置初始配置。
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}
