package mdledger

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/idgen"
	"github.com/web3labscientis/trustlab/internal/app/pkg/latency"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

type stubPublisher struct {
	channel string
	message string
	err     error
}

func (p *stubPublisher) Publish(ctx context.Context, channel string, message string) error {
	p.channel = channel
	p.message = message
	return p.err
}

func newTestModule(pub Publisher) *LedgerModule {
	return NewLedgerModule(idgen.NewGenerator(rand.NewSource(7)), latency.None, pub, logger.NewNop())
}

var (
	dataHashPattern = regexp.MustCompile(`^0x[0-9a-f]{32}\.\.\.$`)
	txIDPattern     = regexp.MustCompile(`^0\.0\.\d+@\d+$`)
)

func TestDataHash(t *testing.T) {
	sub := &etresult.Submission{PatientID: "P-1", TestName: "Lipid Panel"}

	h1, err := DataHash(sub)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !dataHashPattern.MatchString(h1) {
		t.Fatalf("unexpected hash format %q", h1)
	}

	h2, _ := DataHash(sub)
	if h1 != h2 {
		t.Fatalf("hash must be deterministic: %q vs %q", h1, h2)
	}

	sub.Notes = "changed"
	h3, _ := DataHash(sub)
	if h3 == h1 {
		t.Fatal("hash must change with content")
	}

	if _, err := DataHash(nil); !errors.Is(err, etresult.ErrNilSubmission) {
		t.Fatalf("expected ErrNilSubmission, got %v", err)
	}
}

func TestSubmitPublishesReceipt(t *testing.T) {
	pub := &stubPublisher{}
	m := newTestModule(pub)

	receipt, err := m.Submit(context.Background(), "ABC12345", "0xabc...")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Status != etresult.ReceiptStatusSuccess || !txIDPattern.MatchString(receipt.TransactionID) {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	if pub.channel != "ledger:receipt:ABC12345" {
		t.Fatalf("unexpected channel %q", pub.channel)
	}
	var msg ReceiptMessage
	if err := json.Unmarshal([]byte(pub.message), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	if msg.TransactionID != receipt.TransactionID || msg.DataHash != "0xabc..." {
		t.Fatalf("message does not match receipt: %+v", msg)
	}
}

func TestSubmitIgnoresPublishFailure(t *testing.T) {
	m := newTestModule(&stubPublisher{err: errors.New("redis down")})

	if _, err := m.Submit(context.Background(), "ABC12345", "0xabc..."); err != nil {
		t.Fatalf("publish failure must not fail submit: %v", err)
	}
}

func TestSubmitHonorsCancellation(t *testing.T) {
	m := NewLedgerModule(idgen.NewGenerator(nil), latency.Fixed(time.Hour), nil, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Submit(ctx, "ABC12345", "0xabc..."); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPay(t *testing.T) {
	m := newTestModule(nil)

	p, err := m.Pay(context.Background(), "XYZ98765", "0.0.4829137")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if p.Code != "XYZ98765" || p.AccountID != "0.0.4829137" || !txIDPattern.MatchString(p.TransactionID) {
		t.Fatalf("unexpected payment %+v", p)
	}
}
