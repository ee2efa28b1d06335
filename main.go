package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/ByLCY/richlabel/label"
	"github.com/ByLCY/richlabel/layout"
	canvasrenderer "github.com/ByLCY/richlabel/renderer/canvas"
	termrenderer "github.com/ByLCY/richlabel/renderer/term"
)

type options struct {
	text     string
	width    int
	height   int
	wrap     bool
	markup   bool
	align    string
	padding  string
	ellipsis bool
	autoSize string
	font     string
	size     float64
	data     any
	out      string
	debug    string
}

func main() {
	var opts options
	flag.StringVar(&opts.text, "text", "Hello, [color=#0F62FE]${user}[/color]! See [url=https://go.dev]go.dev[/url].", "标签文本")
	flag.IntVar(&opts.width, "width", 320, "盒子宽度（像素；终端模式下为列数）")
	flag.IntVar(&opts.height, "height", 60, "盒子高度（像素；终端模式下为行数）")
	flag.BoolVar(&opts.wrap, "wrap", false, "自动换行")
	flag.BoolVar(&opts.markup, "markup", true, "解析 [color] [font] [url] [ctrl] 等标记")
	flag.StringVar(&opts.align, "align", "top-left", "对齐方式，例如 middle-center")
	flag.StringVar(&opts.padding, "padding", "0", "内边距，1-4 个值，例如 \"4 6\"")
	flag.BoolVar(&opts.ellipsis, "ellipsis", true, "单行溢出时显示省略号")
	flag.StringVar(&opts.autoSize, "autosize", "none", "自动尺寸: none|vertical|horizontal|both")
	flag.StringVar(&opts.font, "font", "builtin:goregular", "正文字体（builtin:<名称> 或字体文件路径）")
	flag.Float64Var(&opts.size, "size", 12, "字号（pt）")
	dataJSON := flag.String("data", `{"user":"Gopher"}`, "绑定到 ${path} 占位符的 JSON 数据")
	flag.StringVar(&opts.out, "out", "output/label.pdf", "PDF 输出路径")
	flag.StringVar(&opts.debug, "debug", "", "排版调试 JSON 输出路径")
	term := flag.Bool("term", false, "在终端中交互显示（q/Esc 退出）")
	listFonts := flag.Bool("fonts", false, "列出已注册的字体名后退出")
	flag.Parse()

	if *listFonts {
		printFonts(os.Stdout, newCanvasRenderer(opts))
		return
	}

	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &opts.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if *term {
		if err := runTerm(opts); err != nil {
			log.Fatalf("终端显示失败: %v", err)
		}
		return
	}
	if err := runPDF(opts); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", opts.out)
}

// newLabel 按命令行参数配置标签。
func newLabel(metrics layout.Metrics, opts options) (*label.Label, error) {
	align, err := layout.ParseAlignment(opts.align)
	if err != nil {
		return nil, err
	}
	pad, err := layout.ParseMargin(opts.padding)
	if err != nil {
		return nil, err
	}
	autoSize, err := parseAutoSize(opts.autoSize)
	if err != nil {
		return nil, err
	}
	l := label.New(metrics, label.DefaultStyle("body"))
	l.Wrap = opts.wrap
	l.Align = align
	l.Padding = &pad
	l.AutoEllipsis = opts.ellipsis
	l.AutoSize = autoSize
	l.SetMarkup(opts.markup)
	l.SetData(opts.data)
	l.SetText(opts.text)
	l.SetSize(layout.Point{X: opts.width, Y: opts.height})
	if err := l.AutoSizeNow(); err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	return l, nil
}

func parseAutoSize(s string) (label.AutoSize, error) {
	switch s {
	case "", "none":
		return label.AutoSizeNone, nil
	case "vertical":
		return label.AutoSizeVertical, nil
	case "horizontal":
		return label.AutoSizeHorizontal, nil
	case "both":
		return label.AutoSizeBoth, nil
	}
	return label.AutoSizeNone, fmt.Errorf("无效的自动尺寸 %q", s)
}

// newCanvasRenderer 注册 [font=名称] 可用的字体。
func newCanvasRenderer(opts options) *canvasrenderer.Renderer {
	return canvasrenderer.New(canvasrenderer.Options{Fonts: map[string]canvasrenderer.FontSpec{
		"body":   {Src: opts.font, Size: opts.size},
		"bold":   {Src: "builtin:gobold", Size: opts.size, Style: "bold"},
		"italic": {Src: "builtin:goitalic", Size: opts.size, Style: "italic"},
		"mono":   {Src: "builtin:gomono", Size: opts.size},
	}})
}

func printFonts(w io.Writer, r *canvasrenderer.Renderer) {
	for _, name := range r.FontNames() {
		fmt.Fprintln(w, name)
	}
}

// runPDF 串联排版与 canvas 渲染，输出单页 PDF。
func runPDF(opts options) error {
	r := newCanvasRenderer(opts)
	l, err := newLabel(r, opts)
	if err != nil {
		return err
	}

	if opts.debug != "" {
		if err := writeDebug(l, opts.debug); err != nil {
			return err
		}
	}

	size := l.Size()
	frame := r.NewFrame(size)
	bounds := layout.Rectangle{Size: size}
	if err := frame.FillRect(bounds, layout.Color{R: 255, G: 255, B: 255, A: 255}); err != nil {
		return err
	}
	if err := l.Draw(frame, layout.Point{}, bounds, 1); err != nil {
		return fmt.Errorf("绘制标签失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	pdfBytes, err := frame.PDF()
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(opts.out, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(l *label.Label, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(l.Result(), l.Config(), debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// runTerm 在终端中显示标签，鼠标悬停高亮链接，点击后打印链接地址。
func runTerm(opts options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()

	r := termrenderer.New(screen)
	l, err := newLabel(r, opts)
	if err != nil {
		screen.Fini()
		return err
	}
	var clicked []string
	l.OnLinkClicked = func(href string) { clicked = append(clicked, href) }
	l.LinkColor = layout.Color{R: 60, G: 60, B: 90, A: 255}
	origin := layout.Point{X: 1, Y: 1}

	draw := func() error {
		screen.Clear()
		w, h := screen.Size()
		if err := l.Draw(r, origin, layout.Rectangle{Size: layout.Point{X: w, Y: h}}, 1); err != nil {
			return err
		}
		screen.Show()
		return nil
	}

	var loopErr error
	for loopErr == nil {
		if loopErr = draw(); loopErr != nil {
			break
		}
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
				screen.Fini()
				for _, href := range clicked {
					fmt.Println(href)
				}
				return nil
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			l.MouseMove(layout.Point{X: x, Y: y}.Sub(origin))
			if ev.Buttons()&tcell.Button1 != 0 {
				l.Click(0)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
	screen.Fini()
	return loopErr
}
