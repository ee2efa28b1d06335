package layout

import "testing"

// TestParseAlignment 覆盖常见写法与别名。
func TestParseAlignment(t *testing.T) {
	cases := map[string]Alignment{
		"":              AlignInherit,
		"inherit":       AlignInherit,
		"top-left":      TopLeft,
		"TopCenter":     AlignInherit, // 不支持驼峰，见下方错误断言
		"middle right":  MiddleRight,
		"bottom_center": BottomCenter,
		"center":        MiddleCenter,
		"right":         TopRight,
		"bottom":        BottomLeft,
		"middle-end":    MiddleRight,
		"start":         TopLeft,
	}
	for in, want := range cases {
		got, err := ParseAlignment(in)
		if in == "TopCenter" {
			if err == nil {
				t.Fatalf("ParseAlignment(%q) 应返回错误", in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseAlignment(%q) 出错: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseAlignment(%q) = %s，期望 %s", in, got, want)
		}
	}
}

func TestAlignmentTextRoundTrip(t *testing.T) {
	for a := TopLeft; a <= BottomRight; a++ {
		b, _ := a.MarshalText()
		var back Alignment
		if err := back.UnmarshalText(b); err != nil || back != a {
			t.Fatalf("%s 往返失败: %s %v", a, back, err)
		}
	}
}

// TestParseMarginVariants 验证 1、2、3、4+ 个值的语义。
func TestParseMarginVariants(t *testing.T) {
	cases := map[string]Margin{
		"":                {},
		"4":               {Left: 4, Top: 4, Right: 4, Bottom: 4},
		"2 6":             {Top: 2, Bottom: 2, Left: 6, Right: 6},
		"1px, 2px, 3px":   {Top: 1, Left: 2, Right: 2, Bottom: 3},
		"1 2 3 4":         {Top: 1, Right: 2, Bottom: 3, Left: 4},
		"1 2 3 4 999 888": {Top: 1, Right: 2, Bottom: 3, Left: 4},
	}
	for in, want := range cases {
		got, err := ParseMargin(in)
		if err != nil {
			t.Fatalf("ParseMargin(%q) 出错: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMargin(%q) = %+v，期望 %+v", in, got, want)
		}
	}
	if _, err := ParseMargin("4 wide"); err == nil {
		t.Fatalf("非法数值应报错")
	}
}
