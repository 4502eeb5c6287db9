package svscan

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

type fakeStream struct {
	mu         sync.Mutex
	frames     []*etscan.Frame
	stops      int
	captureErr error
}

func (s *fakeStream) Capture() (*etscan.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.captureErr != nil {
		return nil, s.captureErr
	}
	if len(s.frames) == 0 {
		return nil, etscan.ErrNoFrame
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

func (s *fakeStream) Stop() {
	s.mu.Lock()
	s.stops++
	s.mu.Unlock()
}

func (s *fakeStream) Push(frame *etscan.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stops > 0 {
		return etscan.ErrStreamStopped
	}
	s.frames = append(s.frames, frame)
	return nil
}

func (s *fakeStream) stopCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

func (s *fakeStream) failCapture(err error) {
	s.mu.Lock()
	s.captureErr = err
	s.mu.Unlock()
}

// fakeSource 记录每次 Open 的流，并检查同一时刻最多一个未释放的流
type fakeSource struct {
	mu         sync.Mutex
	streams    []*fakeStream
	err        error
	violations int
}

func (m *fakeSource) Open(ctx context.Context) (etscan.Stream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.streams {
		if s.stopCount() == 0 {
			m.violations++
		}
	}
	s := &fakeStream{}
	m.streams = append(m.streams, s)
	return s, nil
}

func (m *fakeSource) all() []*fakeStream {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*fakeStream(nil), m.streams...)
}

// markerDecoder 宽度为 2 的帧视为命中
type markerDecoder struct {
	text string
}

func (d *markerDecoder) Decode(frame *etscan.Frame) (string, bool, error) {
	if frame.Width == 2 {
		return d.text, true, nil
	}
	return "", false, nil
}

type stubVerifier struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (v *stubVerifier) VerifyPayload(ctx context.Context, payload string) (*etresult.Outcome, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.payloads = append(v.payloads, payload)
	if v.err != nil {
		return nil, v.err
	}
	return etresult.NotFound("ZZZZZZZZ"), nil
}

func (v *stubVerifier) calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.payloads)
}

var (
	hitFrame  = &etscan.Frame{Width: 2, Height: 1, Pix: make([]byte, 8)}
	missFrame = &etscan.Frame{Width: 1, Height: 1, Pix: make([]byte, 4)}
)

type fixture struct {
	svc      *ScanService
	source   *fakeSource
	verifier *stubVerifier
	notes    *notify.Log
}

func newFixture() *fixture {
	nop := logger.NewNop()
	f := &fixture{
		source:   &fakeSource{},
		verifier: &stubVerifier{},
		notes:    notify.NewLog(10, nop),
	}
	f.svc = NewScanService(f.source, &markerDecoder{text: `{"code":"ZZZZZZZZ"}`}, f.verifier, f.notes, nop, time.Millisecond)
	return f
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDecodeHitStopsThenProcesses(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	snap, err := f.svc.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if snap.State != etscan.StateActive {
		t.Fatalf("expected ACTIVE, got %s", snap.State)
	}

	if err := f.svc.PushFrame(snap.ID, missFrame); err != nil {
		t.Fatalf("push miss: %v", err)
	}
	if err := f.svc.PushFrame(snap.ID, hitFrame); err != nil {
		t.Fatalf("push hit: %v", err)
	}

	var got *etscan.Snapshot
	waitFor(t, func() bool {
		got, _ = f.svc.Get(snap.ID)
		return got.State == etscan.StateIdle && !got.Processing
	})

	if got.StopReason != etscan.StopReasonDecoded || got.Outcome == nil || got.Payload != `{"code":"ZZZZZZZZ"}` {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	streams := f.source.all()
	if len(streams) != 1 || streams[0].stopCount() != 1 {
		t.Fatal("stream must be stopped exactly once")
	}
	if f.verifier.calls() != 1 {
		t.Fatalf("payload must be processed once, got %d", f.verifier.calls())
	}

	// 命中后会话不再接收帧
	if err := f.svc.PushFrame(snap.ID, hitFrame); !errors.Is(err, errorx.ErrSessionInactive) {
		t.Fatalf("expected ErrSessionInactive, got %v", err)
	}
}

func TestProcessingErrorIsStored(t *testing.T) {
	f := newFixture()
	f.verifier.err = errorx.ErrWrongLength

	snap, _ := f.svc.Start(context.Background())
	_ = f.svc.PushFrame(snap.ID, hitFrame)

	var got *etscan.Snapshot
	waitFor(t, func() bool {
		got, _ = f.svc.Get(snap.ID)
		return got.State == etscan.StateIdle && !got.Processing
	})
	if !errors.Is(got.Err, errorx.ErrWrongLength) || got.Outcome != nil {
		t.Fatalf("expected stored validation error, got %+v", got)
	}
}

func TestStartTearsDownPreviousSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, _ := f.svc.Start(ctx)
	second, err := f.svc.Start(ctx)
	if err != nil {
		t.Fatalf("restart: %v", err)
	}

	if f.source.violations != 0 {
		t.Fatal("previous stream must be released before a new one is opened")
	}
	if _, err := f.svc.Get(first.ID); !errors.Is(err, errorx.ErrSessionNotFound) {
		t.Fatalf("old session must be replaced, got %v", err)
	}
	if second.State != etscan.StateActive {
		t.Fatalf("expected ACTIVE, got %s", second.State)
	}
	streams := f.source.all()
	if streams[0].stopCount() != 1 || streams[1].stopCount() != 0 {
		t.Fatal("unexpected stop counts")
	}
}

func TestUserStop(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	snap, _ := f.svc.Start(ctx)
	stopped, err := f.svc.Stop(ctx, snap.ID)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if stopped.State != etscan.StateIdle || stopped.StopReason != etscan.StopReasonUser {
		t.Fatalf("unexpected snapshot %+v", stopped)
	}

	if _, err := f.svc.Stop(ctx, snap.ID); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if n := f.source.all()[0].stopCount(); n != 1 {
		t.Fatalf("stream stopped %d times", n)
	}
	if f.verifier.calls() != 0 {
		t.Fatal("user stop must not process a payload")
	}

	if _, err := f.svc.Stop(ctx, "unknown"); !errors.Is(err, errorx.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestOpenFailure(t *testing.T) {
	f := newFixture()
	f.source.err = errors.New("permission denied")

	snap, err := f.svc.Start(context.Background())
	if !errorx.IsKind(err, errorx.KindDevice) {
		t.Fatalf("expected device error, got %v", err)
	}
	if snap.State != etscan.StateIdle || snap.StopReason != etscan.StopReasonError {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if recent := f.notes.Recent(1); len(recent) != 1 || recent[0].Message != msgCameraUnavailable {
		t.Fatalf("expected camera notification, got %+v", recent)
	}
	if err := f.svc.PushFrame(snap.ID, missFrame); !errors.Is(err, errorx.ErrSessionInactive) {
		t.Fatalf("expected ErrSessionInactive, got %v", err)
	}
}

func TestCaptureErrorReleasesStream(t *testing.T) {
	f := newFixture()

	snap, _ := f.svc.Start(context.Background())
	f.source.all()[0].failCapture(errors.New("device lost"))

	var got *etscan.Snapshot
	waitFor(t, func() bool {
		got, _ = f.svc.Get(snap.ID)
		return got.State == etscan.StateIdle
	})
	if got.StopReason != etscan.StopReasonError || got.Err == nil {
		t.Fatalf("unexpected snapshot %+v", got)
	}
	if n := f.source.all()[0].stopCount(); n != 1 {
		t.Fatalf("stream stopped %d times", n)
	}
}

func TestPushFrameValidation(t *testing.T) {
	f := newFixture()
	snap, _ := f.svc.Start(context.Background())

	err := f.svc.PushFrame(snap.ID, &etscan.Frame{Width: 3, Height: 3, Pix: make([]byte, 1)})
	if !errorx.IsKind(err, errorx.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := f.svc.PushFrame("unknown", missFrame); !errors.Is(err, errorx.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestShutdown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	snap, _ := f.svc.Start(ctx)
	f.svc.Shutdown(ctx)
	f.svc.Shutdown(ctx)

	got, err := f.svc.Get(snap.ID)
	if err != nil || got.State != etscan.StateIdle {
		t.Fatalf("expected idle session after shutdown, got %+v, err=%v", got, err)
	}
	if n := f.source.all()[0].stopCount(); n != 1 {
		t.Fatalf("stream stopped %d times", n)
	}
	if _, err := f.svc.Start(ctx); !errors.Is(err, errorx.ErrCameraUnavailable) {
		t.Fatalf("expected start to fail after shutdown, got %v", err)
	}
}

// 任意 start/stop/出错序列后，非 Active 的流都恰好被释放一次
func TestEveryOpenIsStoppedOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var last *etscan.Snapshot
	for i := 0; i < 6; i++ {
		last, _ = f.svc.Start(ctx)
		switch i % 3 {
		case 0:
			_, _ = f.svc.Stop(ctx, last.ID)
		case 1:
			_ = f.svc.PushFrame(last.ID, hitFrame)
			id := last.ID
			waitFor(t, func() bool {
				s, _ := f.svc.Get(id)
				return s.State == etscan.StateIdle && !s.Processing
			})
		}
	}
	f.svc.Shutdown(ctx)

	if f.source.violations != 0 {
		t.Fatalf("%d streams were opened while another was live", f.source.violations)
	}
	for i, s := range f.source.all() {
		if n := s.stopCount(); n != 1 {
			t.Fatalf("stream %d stopped %d times", i, n)
		}
	}
}
