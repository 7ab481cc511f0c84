//go:build mobile

package utils

// IsMobile 移动端构建恒为 true，HUD 据此显示触摸提示
func IsMobile() bool {
	return true
}
