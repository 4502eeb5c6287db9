package response

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/domains/repo/rpresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

func seedOutcome(code string) *etresult.Outcome {
	return etresult.Found(code, rpresult.SeedRecords()[code])
}

func TestRenderFound(t *testing.T) {
	view := RenderOutcome(seedOutcome("ABC12345"))

	if view.Status != StatusVerified || view.Title != titleVerified || view.Message != messageVerified {
		t.Fatalf("unexpected header %+v", view)
	}
	want := &ResultDetails{
		PatientID: "P001",
		TestName:  "Blood Test - Complete Blood Count",
		Date:      "2024-09-20",
		Result:    "Normal",
		Provider:  "City General Hospital",
		Hash:      "0x1234567890abcdef...",
		Code:      "ABC12345",
	}
	if !reflect.DeepEqual(view.Details, want) {
		t.Fatalf("details = %+v, want %+v", view.Details, want)
	}
	if view.PaymentRequired || len(view.Reasons) != 0 {
		t.Fatalf("unexpected payment/reasons: %+v", view)
	}
}

func TestRenderPaymentFlagMirrorsRecord(t *testing.T) {
	if !RenderOutcome(seedOutcome("XYZ98765")).PaymentRequired {
		t.Fatal("XYZ98765 requires payment")
	}
}

func TestRenderNotFound(t *testing.T) {
	view := RenderOutcome(etresult.NotFound("ZZZZZZZZ"))

	if view.Status != StatusFailed || view.Title != titleFailed || view.Code != "ZZZZZZZZ" {
		t.Fatalf("unexpected view %+v", view)
	}
	if view.Details != nil || view.PaymentRequired {
		t.Fatal("failed view must not carry details or payment prompt")
	}
	if len(view.Reasons) != 4 || view.NextSteps == "" {
		t.Fatalf("expected reasons and next steps, got %+v", view)
	}

	// 调用方修改返回值不影响后续渲染
	view.Reasons[0] = "changed"
	if RenderOutcome(etresult.NotFound("ZZZZZZZZ")).Reasons[0] == "changed" {
		t.Fatal("reasons must not be shared")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	out := seedOutcome("DEF54321")
	if !reflect.DeepEqual(RenderOutcome(out), RenderOutcome(out)) {
		t.Fatal("render must be deterministic")
	}
}

func TestFromUpload(t *testing.T) {
	up := &etresult.Upload{
		Code:     "K7Q2M9XA",
		DataHash: "0xabc...",
		Receipt:  &etresult.Receipt{TransactionID: "0.0.1@1", BlockHash: "0x1...", Status: etresult.ReceiptStatusSuccess},
		QRCode:   []byte{0x89, 'P', 'N', 'G'},
	}
	resp := FromUpload(up)
	if resp.Status != UploadStatusConfirmed || resp.TransactionID != "0.0.1@1" || resp.QRCodePNG != "iVBORw==" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestFromScanSnapshot(t *testing.T) {
	stopped := time.Date(2024, 9, 20, 0, 0, 0, 0, time.UTC)
	resp := FromScanSnapshot(&etscan.Snapshot{
		ID:         "s-1",
		State:      etscan.StateIdle,
		StopReason: etscan.StopReasonDecoded,
		Err:        errorx.ErrInvalidQRFormat,
		StoppedAt:  stopped,
	})
	if resp.State != "IDLE" || resp.StopReason != "DECODED" || resp.Result != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Error == nil || resp.Error.Kind != string(errorx.KindDecode) || resp.StoppedAt == nil {
		t.Fatalf("unexpected error view %+v", resp.Error)
	}

	if v := FromError(errors.New("boom")); v.Kind != "internal" {
		t.Fatalf("unexpected view %+v", v)
	}
}
