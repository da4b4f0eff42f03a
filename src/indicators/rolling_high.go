package indicators

import (
	"time"

	"github.com/shopspring/decimal"
)

// RollingHigh 滑动时间窗口内的最高价指标
//
// 内部使用单调递减队列：新样本入队前先弹出队尾所有不高于它的旧样本，
// 队首即当前窗口最高价，整体摊还复杂度O(n)，避免每根K线重扫整个窗口。
type RollingHigh struct {
	window time.Duration
	points []highPoint
}

type highPoint struct {
	timestamp time.Time
	price     decimal.Decimal
}

// NewRollingHigh 创建滑动窗口最高价指标
func NewRollingHigh(window time.Duration) (*RollingHigh, error) {
	if window <= 0 {
		return nil, ErrInvalidWindow
	}
	return &RollingHigh{
		window: window,
		points: make([]highPoint, 0),
	}, nil
}

// Push 加入一个新样本并使窗口滑动到该样本的时间
func (r *RollingHigh) Push(timestamp time.Time, price decimal.Decimal) {
	// 丢弃滑出窗口的样本（恰好等于窗口长度的也丢弃）
	cutoff := timestamp.Add(-r.window)
	start := 0
	for start < len(r.points) && !r.points[start].timestamp.After(cutoff) {
		start++
	}
	r.points = r.points[start:]

	// 弹出队尾所有不高于新价格的样本，保持队列单调递减
	for len(r.points) > 0 && r.points[len(r.points)-1].price.LessThanOrEqual(price) {
		r.points = r.points[:len(r.points)-1]
	}

	r.points = append(r.points, highPoint{timestamp: timestamp, price: price})
}

// Max 返回当前窗口内的最高价
func (r *RollingHigh) Max() (decimal.Decimal, error) {
	if len(r.points) == 0 {
		return decimal.Zero, ErrEmptyWindow
	}
	return r.points[0].price, nil
}

// Len 返回队列中保留的样本数（只是单调队列长度，不等于窗口内K线数）
func (r *RollingHigh) Len() int {
	return len(r.points)
}

// Reset 清空窗口，用于买入后从当前K线重新开始回看
func (r *RollingHigh) Reset() {
	r.points = r.points[:0]
}
