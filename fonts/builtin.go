package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinPrefix 标记内置字体，例如 "builtin:goregular"。
const BuiltinPrefix = "builtin:"

var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load 返回字体的字节数据。src 可写为 "builtin:goregular"、裸名 "gobold"，或一个 TTF/OTF 文件路径。
func Load(src string) ([]byte, error) {
	name := strings.TrimPrefix(src, BuiltinPrefix)
	if data, ok := builtin[strings.ToLower(name)]; ok {
		return data, nil
	}
	if strings.HasPrefix(src, BuiltinPrefix) {
		return nil, fmt.Errorf("未知内置字体 %q（可选: %s）", name, strings.Join(Names(), ", "))
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("读取字体文件 %s 失败: %w", src, err)
	}
	return data, nil
}
