package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidOptionType 未知的期权类型
var ErrInvalidOptionType = errors.New("invalid option type")

// ShapeError 输入形状或前置条件不满足
// 定价在任何计算开始之前快速失败，不产生部分结果
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return "shape error: " + e.Reason
}

func newShapeError(format string, args ...any) *ShapeError {
	return &ShapeError{Reason: fmt.Sprintf(format, args...)}
}

// DegenerateRegressionError 某一决策日价内路径数不足以拟合所选回归基
// 由延续价值估计器产生，引擎原样向上传递
type DegenerateRegressionError struct {
	Samples  int // 价内样本数
	Required int // 基函数所需的最小样本数
}

func (e *DegenerateRegressionError) Error() string {
	return fmt.Sprintf("degenerate regression: %d in-the-money samples, need at least %d", e.Samples, e.Required)
}
