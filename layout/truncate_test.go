package layout

import (
	"strings"
	"testing"
)

func ellipsisConfig(width int, align Alignment) Config {
	return Config{AutoEllipsis: true, Align: align, Size: Point{X: width, Y: 20}}
}

func TestEllipsisKeepsLongestPrefix(t *testing.T) {
	res := mustCompute(t, []Element{run("abcdefghij")}, ellipsisConfig(75, TopLeft))
	ln := res.Lines[0]
	if got := lineTexts(ln); len(got) != 1 || got[0] != "abcd..." {
		t.Fatalf("期望保留 abcd...，实际 %q", got)
	}
	if ln.Width != 70 || ln.Width > 75 {
		t.Fatalf("截断后行宽错误: %d", ln.Width)
	}
	// 再多一个字符就放不下，说明确实是最长前缀
	if (len("abcde")+len(Ellipsis))*10 <= 75 {
		t.Fatalf("测试前提错误")
	}
}

func TestEllipsisRightAlignedKeepsLongestSuffix(t *testing.T) {
	res := mustCompute(t, []Element{run("abcdefghij")}, ellipsisConfig(75, TopRight))
	ln := res.Lines[0]
	if got := lineTexts(ln); len(got) != 1 || got[0] != "...ghij" {
		t.Fatalf("期望保留 ...ghij，实际 %q", got)
	}
	// 右对齐：右边缘贴住盒子右边界
	el := ln.Elements[0]
	if right := el.Position.X + el.Size.X; right != 75 {
		t.Fatalf("右边缘应为 75，实际 %d", right)
	}
}

func TestEllipsisAcrossRuns(t *testing.T) {
	els := []Element{run("hello"), run(" world"), run(" again")}

	left := mustCompute(t, els, ellipsisConfig(100, MiddleLeft)).Lines[0]
	if got := strings.Join(lineTexts(left), "|"); got != "hello| w..." {
		t.Fatalf("左对齐截断错误: %q", got)
	}
	if left.Width > 100 {
		t.Fatalf("截断后超宽: %d", left.Width)
	}

	right := mustCompute(t, els, ellipsisConfig(100, BottomRight)).Lines[0]
	if got := strings.Join(lineTexts(right), "|"); got != "...d| again" {
		t.Fatalf("右对齐截断错误: %q", got)
	}
	if right.Width > 100 {
		t.Fatalf("截断后超宽: %d", right.Width)
	}
	if x := right.Elements[1].Position.X - right.Elements[0].Position.X; x != right.Elements[0].Size.X {
		t.Fatalf("保留的元素应首尾相接，间距 %d", x)
	}
}

func TestEllipsisCenterUsesPrefix(t *testing.T) {
	res := mustCompute(t, []Element{run("abcdefghij")}, ellipsisConfig(75, MiddleCenter))
	if got := res.Lines[0].Elements[0].Text; got != "abcd..." {
		t.Fatalf("居中对齐应保留前缀，实际 %q", got)
	}
}

func TestNoEllipsisWhenContentFits(t *testing.T) {
	// 30 + 省略号 30 > 40，但内容本身放得下，不应截断
	res := mustCompute(t, []Element{run("abc")}, ellipsisConfig(40, TopLeft))
	if got := res.Lines[0].Elements[0].Text; got != "abc" {
		t.Fatalf("放得下的内容不应截断: %q", got)
	}
}

func TestEllipsisNeverDisappears(t *testing.T) {
	left := mustCompute(t, []Element{run("abcdef")}, ellipsisConfig(20, TopLeft)).Lines[0]
	if got := lineTexts(left); len(got) != 1 || got[0] != "a..." {
		t.Fatalf("至少保留一个字符: %q", got)
	}
	right := mustCompute(t, []Element{run("abcdef")}, ellipsisConfig(20, TopRight)).Lines[0]
	if got := lineTexts(right); len(got) != 1 || got[0] != "...f" {
		t.Fatalf("至少保留一个字符: %q", got)
	}
}

// 省略号本身放得下时结果必须不超宽，前缀或后缀可以为空；
// 只有连省略号都放不下时才保留一个字符。
func TestEllipsisBoundaryWidths(t *testing.T) {
	for width := 20; width < 50; width++ {
		var wantLeft, wantRight string
		switch {
		case width < 30:
			wantLeft, wantRight = "a...", "...f"
		case width < 40:
			wantLeft, wantRight = "...", "..."
		default:
			wantLeft, wantRight = "a...", "...f"
		}
		left := mustCompute(t, []Element{run("abcdef")}, ellipsisConfig(width, TopLeft)).Lines[0]
		if got := lineTexts(left); len(got) != 1 || got[0] != wantLeft {
			t.Fatalf("width=%d 左对齐期望 %q，实际 %q", width, wantLeft, got)
		}
		right := mustCompute(t, []Element{run("abcdef")}, ellipsisConfig(width, TopRight)).Lines[0]
		if got := lineTexts(right); len(got) != 1 || got[0] != wantRight {
			t.Fatalf("width=%d 右对齐期望 %q，实际 %q", width, wantRight, got)
		}
		if width >= 30 && (left.Width > width || right.Width > width) {
			t.Fatalf("width=%d 截断后超宽: %d / %d", width, left.Width, right.Width)
		}
	}
}

func TestEllipsisOnlyForSingleNonWrappedLine(t *testing.T) {
	cfg := ellipsisConfig(50, TopLeft)
	multi := mustCompute(t, []Element{run("abcdefghij"), brk(), run("x")}, cfg)
	if got := multi.Lines[0].Elements[0].Text; got != "abcdefghij" {
		t.Fatalf("多行时不应截断: %q", got)
	}

	cfg.Wrap = true
	wrapped := mustCompute(t, []Element{run("abcdefghij")}, cfg)
	if got := wrapped.Lines[0].Elements[0].Text; got != "abcdefghij" {
		t.Fatalf("折行模式不应截断: %q", got)
	}

	cfg.Wrap = false
	cfg.AutoEllipsis = false
	plain := mustCompute(t, []Element{run("abcdefghij")}, cfg)
	if got := plain.Lines[0].Elements[0].Text; got != "abcdefghij" {
		t.Fatalf("未启用省略号时不应截断: %q", got)
	}
}

// TestEllipsisWidthBound 在一系列宽度上断言截断后的总宽不超过可用宽度。
func TestEllipsisWidthBound(t *testing.T) {
	els := []Element{run("status: "), bigRun("running"), run(" since yesterday")}
	pad := Margin{Left: 4, Right: 6}
	for width := 60; width <= 400; width += 3 {
		for _, align := range []Alignment{TopLeft, TopCenter, TopRight} {
			cfg := ellipsisConfig(width, align)
			cfg.Padding = pad
			ln := mustCompute(t, els, cfg).Lines[0]
			if limit := width - pad.Horizontal(); ln.Width > limit {
				t.Fatalf("width=%d align=%s 截断后超宽: %d > %d (%q)", width, align, ln.Width, limit, lineTexts(ln))
			}
		}
	}
}

func TestGraphemeBounds(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"", []int{0}},
		{"abc", []int{0, 1, 2, 3}},
		{"e\u0301x", []int{0, 3, 4}},
		{"\U0001F44D\U0001F3FD!", []int{0, 8, 9}},
	}
	for _, c := range cases {
		got := graphemeBounds(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("graphemeBounds(%q) = %v，期望 %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("graphemeBounds(%q) = %v，期望 %v", c.in, got, c.want)
			}
		}
	}
}
