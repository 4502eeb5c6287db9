package idgen

import (
	"math/rand"
	"regexp"
	"testing"
	"time"
)

var (
	codeRx      = regexp.MustCompile(`^[A-Z0-9]{8}$`)
	txRx        = regexp.MustCompile(`^0\.0\.\d{1,6}@1727000000123$`)
	blockHashRx = regexp.MustCompile(`^0x[0-9a-f]{16}\.\.\.$`)
)

func TestVerificationCodeShape(t *testing.T) {
	g := NewGenerator(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		if code := g.VerificationCode(); !codeRx.MatchString(code) {
			t.Fatalf("bad code %q", code)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(rand.NewSource(42))
	b := NewGenerator(rand.NewSource(42))
	if a.VerificationCode() != b.VerificationCode() {
		t.Fatalf("same seed must produce same code")
	}
}

func TestTransactionIDAndBlockHash(t *testing.T) {
	g := NewGenerator(rand.NewSource(7))
	now := time.UnixMilli(1727000000123)
	if tx := g.TransactionID(now); !txRx.MatchString(tx) {
		t.Fatalf("bad transaction id %q", tx)
	}
	if h := g.BlockHash(); !blockHashRx.MatchString(h) {
		t.Fatalf("bad block hash %q", h)
	}
}
