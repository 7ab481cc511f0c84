package components

// Tint 实体着色
// 核心只记录语义颜色，具体 RGB 由渲染层决定
type Tint uint8

const (
	// TintNeutral 默认颜色（黑）
	TintNeutral Tint = iota
	// TintPositive 正向命中（绿）
	TintPositive
	// TintNegative 负向命中（红）
	TintNegative
)

// String 返回颜色名称
func (t Tint) String() string {
	switch t {
	case TintPositive:
		return "green"
	case TintNegative:
		return "red"
	default:
		return "black"
	}
}
