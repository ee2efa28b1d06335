package layout

import "fmt"

// Widget 是可以内嵌在文本流中的控件。尺寸由控件自身决定，位置由排版引擎决定。
type Widget interface {
	Size() Point
	SetPosition(p Point)
}

// WidgetFactory 根据引用键创建控件；返回 nil 表示没有对应控件（该位置被跳过）。
type WidgetFactory func(key string) (Widget, error)

// WidgetHost 是控件所在的可视树。Detach 只把控件移出树，不负责销毁。
type WidgetHost interface {
	Contains(w Widget) bool
	Attach(w Widget)
	Detach(w Widget)
}

// WidgetTable 缓存已经创建的内嵌控件，并记录本轮排版引用到的键。
// 条目从不删除：同一个键再次出现时复用之前的控件实例。
type WidgetTable struct {
	factory WidgetFactory
	host    WidgetHost
	widgets map[string]Widget
	order   []string // 插入顺序，保证 sweep 的调用顺序稳定
	active  map[string]bool
}

// NewWidgetTable 创建控件表；factory 或 host 可以为 nil。
func NewWidgetTable(factory WidgetFactory, host WidgetHost) *WidgetTable {
	return &WidgetTable{
		factory: factory,
		host:    host,
		widgets: map[string]Widget{},
		active:  map[string]bool{},
	}
}

// Lookup 返回已缓存的控件。
func (t *WidgetTable) Lookup(key string) (Widget, bool) {
	w, ok := t.widgets[key]
	return w, ok
}

// Active 报告 key 是否在最近一轮排版中被引用。
func (t *WidgetTable) Active(key string) bool { return t.active[key] }

// Len 返回缓存的控件数量。
func (t *WidgetTable) Len() int { return len(t.widgets) }

func (t *WidgetTable) begin() { clear(t.active) }

// resolve 查找或创建控件，标记为活跃并挂到宿主树上。
func (t *WidgetTable) resolve(key string, at Point) (Widget, error) {
	w, ok := t.widgets[key]
	if !ok {
		if t.factory == nil {
			return nil, nil
		}
		created, err := t.factory(key)
		if err != nil {
			return nil, fmt.Errorf("创建内嵌控件 %q 失败: %w", key, err)
		}
		if created == nil {
			return nil, nil
		}
		w = created
		t.widgets[key] = w
		t.order = append(t.order, key)
	}
	t.active[key] = true
	w.SetPosition(at)
	if t.host != nil && !t.host.Contains(w) {
		t.host.Attach(w)
	}
	return w, nil
}

func (t *WidgetTable) place(key string, at Point) {
	if w, ok := t.widgets[key]; ok {
		w.SetPosition(at)
	}
}

// sweep 把本轮未被引用的控件从宿主树上摘下。
func (t *WidgetTable) sweep() {
	if t.host == nil {
		return
	}
	for _, key := range t.order {
		if t.active[key] {
			continue
		}
		if w := t.widgets[key]; t.host.Contains(w) {
			t.host.Detach(w)
		}
	}
}
