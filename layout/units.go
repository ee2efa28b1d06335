package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// This file parses the string forms of alignment and padding used by styles and the CLI.

// ParseAlignment maps a textual alignment to an Alignment value. Accepted forms are
// "<row>-<column>" (e.g. "middle-right"), a single row or column keyword, and the
// aliases start/end for left/right. The empty string and "inherit" yield AlignInherit.
func ParseAlignment(value string) (Alignment, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.NewReplacer("_", "-", " ", "-").Replace(v)
	switch v {
	case "", "inherit":
		return AlignInherit, nil
	case "center", "middle":
		return MiddleCenter, nil
	}

	row, col := -1, -1
	for _, part := range strings.Split(v, "-") {
		switch part {
		case "top":
			row = rowTop
		case "middle":
			row = rowMiddle
		case "bottom":
			row = rowBottom
		case "left", "start":
			col = columnLeft
		case "center":
			col = columnCenter
		case "right", "end":
			col = columnRight
		case "":
		default:
			return AlignInherit, fmt.Errorf("unknown alignment %q", value)
		}
	}
	// A lone keyword keeps the other axis at its default (top / left).
	if row < 0 {
		row = rowTop
	}
	if col < 0 {
		col = columnLeft
	}
	return alignmentOf(row, col), nil
}

// ParseMargin parses one to four pixel values with CSS-like semantics:
//
//	1 value:  all sides
//	2 values: top/bottom, left/right
//	3 values: top, left/right, bottom
//	4 values: top, right, bottom, left (extra values are ignored)
//
// Values may carry a "px" suffix and be separated by spaces or commas.
func ParseMargin(value string) (Margin, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
	vals := make([]int, 0, 4)
	for _, f := range fields {
		if len(vals) == 4 {
			break
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(f), "px"))
		if err != nil {
			return Margin{}, fmt.Errorf("invalid padding value %q: %w", f, err)
		}
		vals = append(vals, n)
	}
	switch len(vals) {
	case 0:
		return Margin{}, nil
	case 1:
		v := vals[0]
		return Margin{Left: v, Top: v, Right: v, Bottom: v}, nil
	case 2:
		return Margin{Top: vals[0], Bottom: vals[0], Left: vals[1], Right: vals[1]}, nil
	case 3:
		return Margin{Top: vals[0], Left: vals[1], Right: vals[1], Bottom: vals[2]}, nil
	default:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
}
