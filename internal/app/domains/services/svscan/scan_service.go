package svscan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdqr"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

const (
	msgCameraUnavailable = "Unable to access camera. Please check permissions."
	msgCameraLost        = "Camera stream interrupted"
)

// Verifier 解码命中后的验证流程
type Verifier interface {
	VerifyPayload(ctx context.Context, payload string) (*etresult.Outcome, error)
}

// ScanService 扫码会话服务，同一进程最多一个 Active 会话
type ScanService struct {
	source   etscan.MediaSource
	decoder  mdqr.Decoder
	verifier Verifier
	notifier notify.Notifier
	logger   logger.Logger
	interval time.Duration

	mu      sync.Mutex
	current *session
	closing *atomic.Bool
	wg      sync.WaitGroup
}

// NewScanService 创建扫码会话服务
func NewScanService(
	source etscan.MediaSource,
	decoder mdqr.Decoder,
	verifier Verifier,
	notifier notify.Notifier,
	log logger.Logger,
	interval time.Duration,
) *ScanService {
	return &ScanService{
		source:   source,
		decoder:  decoder,
		verifier: verifier,
		notifier: notifier,
		logger:   log,
		interval: interval,
		closing:  atomic.NewBool(false),
	}
}

// Start 开始新的扫码会话
// 1. 已有会话先完整停止（停止轮询、等待轮询退出、释放媒体流）
// 2. 进入 Acquiring 并请求媒体流，失败回到 Idle
// 3. 进入 Active 并启动轮询
func (s *ScanService) Start(ctx context.Context) (*etscan.Snapshot, error) {
	if s.closing.Load() {
		return nil, errorx.ErrCameraUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. 停止已有会话
	if s.current != nil {
		s.teardown(ctx, s.current, etscan.StopReasonUser)
	}

	// 2. 请求媒体流
	sess := newSession(uuid.New().String())
	s.current = sess
	ctx = logger.WithValue(ctx, logger.KeyScanSessionID, sess.id)

	stream, err := s.source.Open(ctx)
	if err != nil {
		if !errorx.IsKind(err, errorx.KindDevice) {
			err = errorx.Device(msgCameraUnavailable, err)
		}
		sess.finish(etscan.StopReasonError, err)
		s.logger.Warnf(ctx, "[Scan] open media source failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgCameraUnavailable)
		return sess.snapshot(), err
	}

	// 3. 启动轮询，生命周期与请求无关
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	sess.activate(stream, cancel)
	s.wg.Add(1)
	go s.run(loopCtx, sess)

	s.logger.Infof(ctx, "[Scan] session started")
	return sess.snapshot(), nil
}

// Stop 用户停止会话，已停止时返回当前快照
func (s *ScanService) Stop(ctx context.Context, id string) (*etscan.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	s.teardown(ctx, sess, etscan.StopReasonUser)
	return sess.snapshot(), nil
}

// Get 查询会话
func (s *ScanService) Get(id string) (*etscan.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

// PushFrame 向 Active 会话的媒体流推送一帧
func (s *ScanService) PushFrame(id string, frame *etscan.Frame) error {
	if err := frame.Validate(); err != nil {
		return errorx.Validation(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	if !sess.isActive() {
		return errorx.ErrSessionInactive
	}

	sink, ok := sess.stream.(etscan.FrameSink)
	if !ok {
		return errorx.Device("Media source does not accept frames", nil)
	}
	if err := sink.Push(frame); err != nil {
		if errors.Is(err, etscan.ErrStreamStopped) {
			return errorx.ErrSessionInactive
		}
		return errorx.Device(msgCameraLost, err)
	}
	return nil
}

// Shutdown 停止当前会话并等待后台处理结束
func (s *ScanService) Shutdown(ctx context.Context) {
	if !s.closing.CAS(false, true) {
		return
	}

	s.mu.Lock()
	if s.current != nil {
		s.teardown(ctx, s.current, etscan.StopReasonUser)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infof(ctx, "[Scan] shutdown complete")
	case <-ctx.Done():
		s.logger.Warnf(ctx, "[Scan] shutdown interrupted: %v", ctx.Err())
	}
}

func (s *ScanService) lookup(id string) (*session, error) {
	if s.current == nil || s.current.id != id {
		return nil, errorx.ErrSessionNotFound
	}
	return s.current, nil
}

// teardown 停止轮询、等待轮询退出、释放媒体流，调用方持有 s.mu
func (s *ScanService) teardown(ctx context.Context, sess *session, reason etscan.StopReason) {
	cancel, pollDone := sess.handles()
	if cancel != nil {
		cancel()
	}
	if pollDone != nil {
		<-pollDone
	}
	sess.release()

	if sess.finish(reason, nil) {
		s.logger.Infof(logger.WithValue(ctx, logger.KeyScanSessionID, sess.id), "[Scan] session stopped: reason=%s", reason)
	}
}

// run 会话后台协程：轮询直至命中、出错或取消
func (s *ScanService) run(ctx context.Context, sess *session) {
	defer s.wg.Done()

	payload, err := s.poll(ctx, sess)

	// 解码必须完全停止后才处理结果
	sess.release()
	close(sess.pollDone)

	switch {
	case ctx.Err() != nil && payload == "":
		// 被 teardown 取消，由其负责状态迁移

	case err != nil:
		if sess.finish(etscan.StopReasonError, err) {
			s.logger.Warnf(ctx, "[Scan] polling stopped by error: %v", err)
			s.notifier.Notify(ctx, notify.KindError, msgCameraLost)
		}

	default:
		if !sess.finish(etscan.StopReasonDecoded, nil) {
			return
		}
		s.logger.Infof(ctx, "[Scan] qr code decoded")
		outcome, err := s.verifier.VerifyPayload(context.WithoutCancel(ctx), payload)
		sess.complete(payload, outcome, err)
	}
}

// poll 按固定间隔抓帧解码，返回命中的文本
func (s *ScanService) poll(ctx context.Context, sess *session) (string, error) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		frame, err := sess.stream.Capture()
		if errors.Is(err, etscan.ErrNoFrame) {
			continue
		}
		if err != nil {
			return "", err
		}

		text, ok, err := s.decoder.Decode(frame)
		if err != nil {
			// 单帧解码失败不终止会话
			s.logger.Debugf(ctx, "[Scan] decode frame failed: %v", err)
			continue
		}
		if ok {
			return text, nil
		}
	}
}
