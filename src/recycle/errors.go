package recycle

import "errors"

var (
	// ErrEmptySeries 价格序列为空
	ErrEmptySeries = errors.New("price series is empty")

	// ErrUnorderedSeries 时间戳不是严格递增
	ErrUnorderedSeries = errors.New("timestamps not strictly increasing")

	// ErrNonPositivePrice 价格必须为正数
	ErrNonPositivePrice = errors.New("price must be positive")

	// ErrInvalidParams 策略参数无效
	ErrInvalidParams = errors.New("invalid strategy params")
)
