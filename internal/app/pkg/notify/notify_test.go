package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

func TestLogKeepsNewestFirstWithinCapacity(t *testing.T) {
	l := NewLog(3, logger.NewNop())
	for i := 0; i < 5; i++ {
		l.Notify(context.Background(), KindInfo, fmt.Sprintf("msg-%d", i))
	}

	got := l.Recent(0)
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Message != "msg-4" || got[2].Message != "msg-2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRecentLimit(t *testing.T) {
	l := NewLog(0, logger.NewNop())
	l.Notify(context.Background(), KindError, "a")
	l.Notify(context.Background(), KindSuccess, "b")

	got := l.Recent(1)
	if len(got) != 1 || got[0].Kind != KindSuccess {
		t.Fatalf("unexpected recent: %+v", got)
	}
}
