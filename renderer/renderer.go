package renderer

import "github.com/ByLCY/richlabel/layout"

// TextStyle 描述一段文本的绘制样式。
type TextStyle struct {
	Color     layout.Color
	Underline bool
}

// Painter 在输出表面上绘制排版结果，坐标以像素为单位、左上角为原点。
// at 是文本包围盒的左上角，与 layout.Element.Position 一致。
type Painter interface {
	DrawText(text string, at layout.Point, font string, style TextStyle) error
	FillRect(r layout.Rectangle, c layout.Color) error
}

// Renderer 同时提供度量与绘制，供标签控件在同一后端上排版和输出。
type Renderer interface {
	layout.Metrics
	Painter
}
