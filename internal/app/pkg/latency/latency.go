// Package latency 模拟网络/上链延迟，可注入以便测试同步运行
package latency

import (
	"context"
	"time"
)

// Strategy 延迟策略
type Strategy interface {
	Wait(ctx context.Context) error
}

// Fixed 固定时长延迟
type Fixed time.Duration

// None 不延迟
const None = Fixed(0)

// Wait 等待固定时长，ctx 取消时提前返回
func (f Fixed) Wait(ctx context.Context) error {
	if f <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(f))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
