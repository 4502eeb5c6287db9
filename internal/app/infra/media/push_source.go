package media

import (
	"context"
	"sync"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

// PushSource 服务端媒体源：帧由客户端上传，每个流只保留最新一帧
type PushSource struct {
	enabled bool
}

// NewPushSource 创建媒体源，enabled 为 false 时 Open 始终失败
func NewPushSource(enabled bool) *PushSource {
	return &PushSource{enabled: enabled}
}

// Open 实现 etscan.MediaSource
func (p *PushSource) Open(ctx context.Context) (etscan.Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.enabled {
		return nil, errorx.ErrCameraUnavailable
	}
	return &PushStream{}, nil
}

// PushStream 最新帧槽位
type PushStream struct {
	mu      sync.Mutex
	latest  *etscan.Frame
	stopped bool
}

// Push 写入最新帧，覆盖尚未被读取的旧帧
func (s *PushStream) Push(frame *etscan.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return etscan.ErrStreamStopped
	}
	s.latest = frame
	return nil
}

// Capture 取走最新帧
func (s *PushStream) Capture() (*etscan.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, etscan.ErrStreamStopped
	}
	if s.latest == nil {
		return nil, etscan.ErrNoFrame
	}
	f := s.latest
	s.latest = nil
	return f, nil
}

// Stop 释放流并丢弃缓存帧
func (s *PushStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	s.latest = nil
}
