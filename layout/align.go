package layout

// Alignment 是 3×3 的对齐方式，外加 AlignInherit（由样式决定）。
type Alignment int

const (
	AlignInherit Alignment = iota
	TopLeft
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

const (
	rowTop = iota
	rowMiddle
	rowBottom
)

const (
	columnLeft = iota
	columnCenter
	columnRight
)

var alignmentNames = [...]string{
	AlignInherit: "inherit",
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	MiddleLeft:   "middle-left",
	MiddleCenter: "middle-center",
	MiddleRight:  "middle-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return "inherit"
	}
	return alignmentNames[a]
}

// MarshalText 让调试 JSON 输出对齐名称。
func (a Alignment) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText 接受 ParseAlignment 支持的所有写法。
func (a *Alignment) UnmarshalText(b []byte) error {
	v, err := ParseAlignment(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Resolve 在 a 为 AlignInherit 时返回 fallback。
func (a Alignment) Resolve(fallback Alignment) Alignment {
	if a == AlignInherit || a < 0 || int(a) >= len(alignmentNames) {
		return fallback
	}
	return a
}

func alignmentOf(row, col int) Alignment { return Alignment(1 + row*3 + col) }

// Row 返回垂直分量（top/middle/bottom）；AlignInherit 视为 top。
func (a Alignment) Row() int {
	a = a.Resolve(TopLeft)
	return int(a-1) / 3
}

// Column 返回水平分量（left/center/right）；AlignInherit 视为 left。
func (a Alignment) Column() int {
	a = a.Resolve(TopLeft)
	return int(a-1) % 3
}

// IsRight 用于截断：右对齐时从尾部保留内容。
func (a Alignment) IsRight() bool { return a.Column() == columnRight }

// 垂直偏移：以 textSize（含内边距）与盒子高度计算。
var rowOffsets = [...]func(box, textSize Point, pad Margin) int{
	rowTop:    func(_, _ Point, pad Margin) int { return pad.Top },
	rowBottom: func(box, textSize Point, _ Margin) int { return box.Y - textSize.Y },
	rowMiddle: func(box, textSize Point, pad Margin) int {
		return (box.Y - (textSize.Y - pad.Top - pad.Bottom)) / 2
	},
}

// 水平偏移：每行独立，基于该行宽度。
var columnOffsets = [...]func(box Point, lineWidth int, pad Margin) int{
	columnLeft:   func(_ Point, _ int, pad Margin) int { return pad.Left },
	columnRight:  func(box Point, lineWidth int, pad Margin) int { return box.X - lineWidth - pad.Right },
	columnCenter: func(box Point, lineWidth int, _ Margin) int { return (box.X - lineWidth) / 2 },
}

// Offset 返回某一行在给定对齐下的 (x, y) 偏移，与之前的排版状态无关。
func (a Alignment) Offset(box, textSize Point, lineWidth int, pad Margin) Point {
	return Point{
		X: columnOffsets[a.Column()](box, lineWidth, pad),
		Y: rowOffsets[a.Row()](box, textSize, pad),
	}
}

// finalize 把每行元素的相对坐标转换为盒子坐标，并把内嵌控件移动到最终位置。
func finalize(lines []Line, textSize, box Point, align Alignment, pad Margin, widgets *WidgetTable) {
	for i := range lines {
		ln := &lines[i]
		off := align.Offset(box, textSize, ln.Width, pad)
		ln.Y += off.Y
		for j := range ln.Elements {
			el := &ln.Elements[j]
			el.Position = el.Position.Add(off)
			if el.Kind == WidgetRef && widgets != nil {
				widgets.place(el.Key, el.Position)
			}
		}
	}
}
