package importer

import "math"

// Tracker 行进度跟踪
// 百分比保留一位小数，距上次发送增长 ≥0.1 才发送，最后一行无条件发送，
// 序列保证单调不减
type Tracker struct {
	total int
	last  float64
	emit  func(pct float64)
}

// NewTracker 创建进度跟踪器，total 为输入总行数
func NewTracker(total int, emit func(pct float64)) *Tracker {
	return &Tracker{total: total, emit: emit}
}

// Advance 上报已处理行数
func (t *Tracker) Advance(processed int) {
	if t.total <= 0 || t.emit == nil {
		return
	}

	pct := round1(float64(processed) / float64(t.total) * 100)
	if pct < t.last {
		return
	}

	if pct-t.last < 0.1 && processed < t.total {
		return
	}

	t.last = pct
	t.emit(pct)
}

// round1 保留一位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
