package notify

import (
	"context"
	"sync"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// Kind 通知类型
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Notifier 通知接收方
type Notifier interface {
	Notify(ctx context.Context, kind Kind, message string)
}

// Notification 单条通知
type Notification struct {
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Log 保留最近的通知并写日志
type Log struct {
	mu       sync.Mutex
	capacity int
	items    []Notification
	logger   logger.Logger
}

// DefaultCapacity 默认保留条数
const DefaultCapacity = 50

// NewLog 创建通知日志
func NewLog(capacity int, log logger.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		items:    make([]Notification, 0, capacity),
		logger:   log,
	}
}

// Notify 实现 Notifier
func (l *Log) Notify(ctx context.Context, kind Kind, message string) {
	l.mu.Lock()
	if len(l.items) == l.capacity {
		copy(l.items, l.items[1:])
		l.items = l.items[:len(l.items)-1]
	}
	l.items = append(l.items, Notification{Kind: kind, Message: message, CreatedAt: time.Now()})
	l.mu.Unlock()

	switch kind {
	case KindError:
		l.logger.Warnf(ctx, "[Notify] %s: %s", kind, message)
	default:
		l.logger.Infof(ctx, "[Notify] %s: %s", kind, message)
	}
}

// Recent 返回最近 n 条通知，最新的在前
func (l *Log) Recent(n int) []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || n > len(l.items) {
		n = len(l.items)
	}
	out := make([]Notification, 0, n)
	for i := len(l.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.items[i])
	}
	return out
}
