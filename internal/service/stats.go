package service

import "go.uber.org/atomic"

// Stats counts dispatch outcomes since process start.
type Stats struct {
	Sent      atomic.Int64
	Demo      atomic.Int64
	Rejected  atomic.Int64
	Failed    atomic.Int64
	Throttled atomic.Int64
	Invalid   atomic.Int64
}

func (s *Stats) Snapshot() map[string]int64 {
	return map[string]int64{
		"sent":      s.Sent.Load(),
		"demo":      s.Demo.Load(),
		"rejected":  s.Rejected.Load(),
		"failed":    s.Failed.Load(),
		"throttled": s.Throttled.Load(),
		"invalid":   s.Invalid.Load(),
	}
}
