package config

import (
	"fmt"

	"github.com/decker502/spikedodge/pkg/embedded"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/game.yaml"

// LoadDefault 加载嵌入的默认配置
//
// embedded 包未初始化时（例如单元测试或 go run 单个包）回退到 Defaults()。
func LoadDefault() (*GameConfig, error) {
	if !embedded.IsInitialized() {
		return Defaults(), nil
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}
	return Parse(data, FormatFromPath(DefaultConfigPath))
}

// Resolve 根据命令行参数选择配置来源
// path 为空时使用嵌入的默认配置
func Resolve(path string) (*GameConfig, error) {
	if path == "" {
		return LoadDefault()
	}
	return Load(path)
}
