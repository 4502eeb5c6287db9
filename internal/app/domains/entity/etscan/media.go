package etscan

import (
	"context"
	"errors"
)

var (
	ErrNoFrame       = errors.New("no frame available")
	ErrStreamStopped = errors.New("stream stopped")
)

// MediaSource 摄像头等媒体源
type MediaSource interface {
	Open(ctx context.Context) (Stream, error)
}

// Stream 已获取的媒体流，Stop 释放底层设备
type Stream interface {
	// Capture 返回当前帧，暂无新帧时返回 ErrNoFrame
	Capture() (*Frame, error)
	Stop()
}

// FrameSink 支持由客户端推送帧的媒体流
type FrameSink interface {
	Push(frame *Frame) error
}
