package layout

import (
	"sort"

	"github.com/rivo/uniseg"
)

// Ellipsis 是截断时追加（或前置）的标记。
const Ellipsis = "..."

// truncate 对单行结果做省略号截断，只在行宽超过可用宽度时生效。
// 左/居中对齐保留最长前缀并在末尾追加省略号；右对齐保留最长后缀并在开头加省略号。
// 返回被截掉的内嵌控件键，调用方需要把它们从本轮活跃集合中移除。
func truncate(line *Line, cfg Config, metrics Metrics) ([]string, error) {
	limit := cfg.limit()
	if len(line.Elements) == 0 || line.Width <= limit {
		return nil, nil
	}
	var (
		kept    []Element
		dropped []string
		err     error
	)
	if cfg.Align.IsRight() {
		kept, dropped, err = keepTail(line.Elements, limit, metrics)
	} else {
		kept, dropped, err = keepHead(line.Elements, limit, metrics)
	}
	if err != nil {
		return nil, err
	}

	// 保留的元素从 0 开始重新连续排布；右对齐时 finalize 会把行尾贴回右边界。
	x, width := 0, 0
	for i := range kept {
		kept[i].Position.X = x
		x += kept[i].Size.X
		width += kept[i].Size.X
	}
	line.Elements = kept
	line.Width = width
	return dropped, nil
}

func keepHead(els []Element, limit int, metrics Metrics) ([]Element, []string, error) {
	width := 0
	for i := range els {
		ell, err := metrics.Measure(Ellipsis, els[i].Font)
		if err != nil {
			return nil, nil, err
		}
		if width+els[i].Size.X+ell.X <= limit {
			width += els[i].Size.X
			continue
		}
		// 若连省略号都放不下（例如该元素字体更大），退回到前一个元素截断。
		for j := i; j >= 0; j-- {
			if j < i {
				width -= els[j].Size.X
			}
			cut, err := fitPrefix(els[j], limit-width, j == 0, metrics)
			if err != nil {
				return nil, nil, err
			}
			if cut.Size.X <= limit-width || j == 0 {
				kept := append(append([]Element(nil), els[:j]...), cut)
				return kept, widgetKeys(els[j:]), nil
			}
		}
	}
	return els, nil, nil
}

func keepTail(els []Element, limit int, metrics Metrics) ([]Element, []string, error) {
	width := 0
	last := len(els) - 1
	for i := last; i >= 0; i-- {
		ell, err := metrics.Measure(Ellipsis, els[i].Font)
		if err != nil {
			return nil, nil, err
		}
		if width+els[i].Size.X+ell.X <= limit {
			width += els[i].Size.X
			continue
		}
		for j := i; j <= last; j++ {
			if j > i {
				width -= els[j].Size.X
			}
			cut, err := fitSuffix(els[j], limit-width, j == last, metrics)
			if err != nil {
				return nil, nil, err
			}
			if cut.Size.X <= limit-width || j == last {
				kept := append([]Element{cut}, els[j+1:]...)
				return kept, widgetKeys(els[:j+1]), nil
			}
		}
	}
	return els, nil, nil
}

// fitPrefix 返回 el 截断后的版本：最长的前缀 P，使 P+"..." 的宽度不超过 budget。
// 连 "..." 本身都放不下时，keepOne 为真则至少保留一个字素，保证整行不会只剩下空白；
// 只要 "..." 放得下，结果就不超过 budget，前缀可以为空。
func fitPrefix(el Element, budget int, keepOne bool, metrics Metrics) (Element, error) {
	if el.Kind != TextRun {
		return ellipsisOnly(el, metrics)
	}
	bounds := graphemeBounds(el.Text)
	n := len(bounds) - 1
	var measureErr error
	fits := func(k int) bool {
		if measureErr != nil {
			return true
		}
		sz, err := metrics.Measure(el.Text[:bounds[k]]+Ellipsis, el.Font)
		if err != nil {
			measureErr = err
			return true
		}
		return sz.X <= budget
	}
	// 第一个放不下的 k 之前就是最长可行前缀
	k := sort.Search(n+1, func(k int) bool { return !fits(k) }) - 1
	if measureErr != nil {
		return Element{}, measureErr
	}
	if k < 0 {
		k = 0
		if keepOne && n > 0 {
			k = 1
		}
	}
	return remeasure(el, el.Text[:bounds[k]]+Ellipsis, metrics)
}

// fitSuffix 与 fitPrefix 对称：最长的后缀 S，使 "..."+S 的宽度不超过 budget。
func fitSuffix(el Element, budget int, keepOne bool, metrics Metrics) (Element, error) {
	if el.Kind != TextRun {
		return ellipsisOnly(el, metrics)
	}
	bounds := graphemeBounds(el.Text)
	n := len(bounds) - 1
	var measureErr error
	k := sort.Search(n+1, func(k int) bool {
		if measureErr != nil {
			return true
		}
		sz, err := metrics.Measure(Ellipsis+el.Text[bounds[k]:], el.Font)
		if err != nil {
			measureErr = err
			return true
		}
		return sz.X <= budget
	})
	if measureErr != nil {
		return Element{}, measureErr
	}
	if k > n {
		k = n
		if keepOne && n > 0 {
			k = n - 1
		}
	}
	return remeasure(el, Ellipsis+el.Text[bounds[k]:], metrics)
}

// ellipsisOnly 把无法截断的元素（内嵌控件）替换为一个只含省略号的文本片段。
func ellipsisOnly(el Element, metrics Metrics) (Element, error) {
	out := Element{Kind: TextRun, Font: el.Font, Color: el.Color, Position: el.Position, Size: el.Size}
	return remeasure(out, Ellipsis, metrics)
}

func remeasure(el Element, text string, metrics Metrics) (Element, error) {
	sz, err := metrics.Measure(text, el.Font)
	if err != nil {
		return Element{}, err
	}
	// 保持底对齐：行高不变，底边不动
	el.Position.Y += el.Size.Y - sz.Y
	el.Text = text
	el.Size = sz
	return el, nil
}

// graphemeBounds 返回字素簇边界的字节偏移，首元素为 0，末元素为 len(s)。
func graphemeBounds(s string) []int {
	bounds := []int{0}
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		_, to := g.Positions()
		bounds = append(bounds, to)
	}
	return bounds
}

func widgetKeys(els []Element) []string {
	var keys []string
	for _, el := range els {
		if el.Kind == WidgetRef {
			keys = append(keys, el.Key)
		}
	}
	return keys
}
