package svscan

import (
	"context"
	"sync"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
)

// session 单次扫码会话
type session struct {
	id string

	mu         sync.Mutex
	state      etscan.State
	reason     etscan.StopReason
	processing bool
	payload    string
	outcome    *etresult.Outcome
	err        error
	startedAt  time.Time
	stoppedAt  time.Time

	stream      etscan.Stream
	cancel      context.CancelFunc
	pollDone    chan struct{}
	releaseOnce sync.Once
}

func newSession(id string) *session {
	return &session{
		id:        id,
		state:     etscan.StateAcquiring,
		startedAt: time.Now(),
	}
}

// activate 获取到媒体流后进入 Active
func (s *session) activate(stream etscan.Stream, cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stream = stream
	s.cancel = cancel
	s.pollDone = make(chan struct{})
	s.state = etscan.StateActive
}

// release 释放媒体流，只执行一次
func (s *session) release() {
	s.releaseOnce.Do(func() {
		s.mu.Lock()
		stream := s.stream
		s.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
	})
}

// finish 回到 Idle，已是 Idle 时保留首次的停止原因
func (s *session) finish(reason etscan.StopReason, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == etscan.StateIdle {
		return false
	}
	s.state = etscan.StateIdle
	s.reason = reason
	s.err = err
	s.stoppedAt = time.Now()
	if reason == etscan.StopReasonDecoded {
		s.processing = true
	}
	return true
}

// complete 记录解码后的处理结果
func (s *session) complete(payload string, outcome *etresult.Outcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payload = payload
	s.outcome = outcome
	s.err = err
	s.processing = false
}

func (s *session) handles() (context.CancelFunc, chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel, s.pollDone
}

func (s *session) isActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == etscan.StateActive
}

func (s *session) snapshot() *etscan.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &etscan.Snapshot{
		ID:         s.id,
		State:      s.state,
		StopReason: s.reason,
		Processing: s.processing,
		Payload:    s.payload,
		Outcome:    s.outcome,
		Err:        s.err,
		StartedAt:  s.startedAt,
		StoppedAt:  s.stoppedAt,
	}
}
