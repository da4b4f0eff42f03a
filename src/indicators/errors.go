package indicators

import "errors"

var (
	// ErrInvalidWindow 无效窗口长度错误
	ErrInvalidWindow = errors.New("invalid window, must be greater than 0")

	// ErrEmptyWindow 窗口内没有样本错误
	ErrEmptyWindow = errors.New("no samples in window")
)
