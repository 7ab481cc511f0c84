//go:build !mobile

// 非移动端构建时的占位文件
//
// 桌面端执行 go build ./... 时 mobile 包只包含本文件；
// 真正的绑定代码在 mobile.go 和 embed.go 中，仅在 -tags mobile 时编译。
package mobile

// Dummy 空导出函数，保证包在非移动端构建时也有内容
func Dummy() {}
