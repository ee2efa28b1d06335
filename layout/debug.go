package layout

import (
	"encoding/json"
	"os"
)

// DebugDump 是调试 JSON 的顶层结构：排版配置与结果放在一起便于对照。
type DebugDump struct {
	Config Config  `json:"config"`
	Result *Result `json:"result"`
}

// WriteDebugJSON 将排版配置与结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, cfg Config, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(DebugDump{Config: cfg, Result: res}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
