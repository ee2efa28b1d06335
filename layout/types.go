package layout

// 该文件定义排版输入元素与排版结果，供行构建、截断、对齐、绘制与调试 JSON 共用。

// Point 表示像素坐标或尺寸。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add 返回两个点的和。
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub 返回两个点的差。
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rectangle 由左上角与尺寸描述，用于命中测试与裁剪。
type Rectangle struct {
	Min  Point `json:"min"`
	Size Point `json:"size"`
}

// Max 返回右下角（不包含）。
func (r Rectangle) Max() Point { return r.Min.Add(r.Size) }

// Contains 判断点是否落在矩形内（右、下边界不包含）。
func (r Rectangle) Contains(p Point) bool {
	max := r.Max()
	return p.X >= r.Min.X && p.X < max.X && p.Y >= r.Min.Y && p.Y < max.Y
}

// Intersects 判断两个矩形是否相交；零面积矩形不与任何矩形相交。
func (r Rectangle) Intersects(o Rectangle) bool {
	if r.Size.X <= 0 || r.Size.Y <= 0 || o.Size.X <= 0 || o.Size.Y <= 0 {
		return false
	}
	rMax, oMax := r.Max(), o.Max()
	return r.Min.X < oMax.X && o.Min.X < rMax.X && r.Min.Y < oMax.Y && o.Min.Y < rMax.Y
}

// Margin 描述四边内边距（像素）。
type Margin struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Horizontal 返回左右内边距之和。
func (m Margin) Horizontal() int { return m.Left + m.Right }

// Vertical 返回上下内边距之和。
func (m Margin) Vertical() int { return m.Top + m.Bottom }

// Color 采用 0-255 的 RGBA 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
	A int `json:"a"`
}

// WithOpacity 按不透明度缩放 alpha 通道。
func (c Color) WithOpacity(opacity float64) Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = int(float64(c.A)*opacity + 0.5)
	return c
}

// ElementKind 区分行内元素的类型。
type ElementKind int

const (
	TextRun   ElementKind = iota // 普通文本片段
	LineBreak                    // 显式换行
	WidgetRef                    // 内嵌控件引用
)

func (k ElementKind) String() string {
	switch k {
	case TextRun:
		return "text"
	case LineBreak:
		return "break"
	case WidgetRef:
		return "widget"
	default:
		return "unknown"
	}
}

// MarshalText 让调试 JSON 输出可读的类型名。
func (k ElementKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Element 是一个行内元素。排版前只有 Kind/Text/Font 等输入字段有意义，
// 排版后非换行元素都带有相对（或最终绝对）坐标与测量尺寸。
type Element struct {
	Kind     ElementKind `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Font     string      `json:"font,omitempty"`
	Color    *Color      `json:"color,omitempty"`
	IsLink   bool        `json:"isLink,omitempty"`
	Href     string      `json:"href,omitempty"`
	Key      string      `json:"key,omitempty"` // WidgetRef 的控件键
	Position Point       `json:"position"`
	Size     Point       `json:"size"`
}

// Rectangle 返回元素的包围盒。
func (e Element) Rectangle() Rectangle { return Rectangle{Min: e.Position, Size: e.Size} }

// Line 表示一行已定位的元素；同一行共享 Height 作为行高。
type Line struct {
	Elements []Element `json:"elements"`
	Width    int       `json:"width"`
	Y        int       `json:"y"`
	Height   int       `json:"height"`
}

// Result 保存一次完整排版的输出。
type Result struct {
	Lines    []Line `json:"lines"`
	TextSize Point  `json:"textSize"` // 全部内容的包围尺寸（含内边距）
}

// Clone 深拷贝结果，调用方可以随意修改副本。
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{TextSize: r.TextSize, Lines: make([]Line, len(r.Lines))}
	for i, ln := range r.Lines {
		out.Lines[i] = ln
		out.Lines[i].Elements = append([]Element(nil), ln.Elements...)
	}
	return out
}

// HitTest 返回 p 所在的链接元素；坐标与 Result 一致（盒子坐标）。
func (r *Result) HitTest(p Point) *Element {
	if r == nil {
		return nil
	}
	for i := range r.Lines {
		for j := range r.Lines[i].Elements {
			el := &r.Lines[i].Elements[j]
			if el.IsLink && el.Rectangle().Contains(p) {
				return el
			}
		}
	}
	return nil
}
