package response

import (
	"encoding/base64"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

const (
	titleVerified   = "Result Verified ✓"
	titleFailed     = "Verification Failed ✗"
	messageVerified = "This medical test result is authentic and verified on the blockchain."
	messageFailed   = "The verification code you entered is invalid or the result could not be found."
	nextStepsFailed = "Please double-check your verification code or contact your healthcare provider for assistance."

	// UploadStatusConfirmed 上传成功展示的交易状态
	UploadStatusConfirmed = "Confirmed"
	recentStatusVerified  = "Verified"
	paymentMessage        = "Payment successful! Transaction recorded on blockchain."
)

var failedReasons = []string{
	"Incorrect verification code",
	"Result not yet uploaded to the blockchain",
	"Expired verification code",
	"Technical issue with the verification system",
}

// RenderOutcome 将验证结果转换为展示结构，纯函数
func RenderOutcome(outcome *etresult.Outcome) *VerificationView {
	if !outcome.IsFound() {
		view := &VerificationView{
			Status:    StatusFailed,
			Title:     titleFailed,
			Message:   messageFailed,
			Reasons:   append([]string(nil), failedReasons...),
			NextSteps: nextStepsFailed,
		}
		if outcome != nil {
			view.Code = outcome.Code
		}
		return view
	}

	rec := outcome.Record
	return &VerificationView{
		Status:  StatusVerified,
		Title:   titleVerified,
		Message: messageVerified,
		Code:    outcome.Code,
		Details: &ResultDetails{
			PatientID: rec.PatientID,
			TestName:  rec.TestName,
			Date:      rec.TestDate.Format(etresult.DateLayout),
			Result:    rec.Result,
			Provider:  rec.Provider,
			Hash:      rec.Hash,
			Code:      outcome.Code,
		},
		PaymentRequired: rec.RequiresPayment,
	}
}

// FromUpload 从领域对象转换为响应 DTO
func FromUpload(upload *etresult.Upload) *UploadResponse {
	resp := &UploadResponse{
		Code:      upload.Code,
		DataHash:  upload.DataHash,
		Status:    UploadStatusConfirmed,
		QRPayload: upload.QRPayload,
		CreatedAt: upload.CreatedAt,
	}
	if upload.Receipt != nil {
		resp.TransactionID = upload.Receipt.TransactionID
		resp.BlockHash = upload.Receipt.BlockHash
	}
	if len(upload.QRCode) > 0 {
		resp.QRCodePNG = base64.StdEncoding.EncodeToString(upload.QRCode)
	}
	return resp
}

// FromRecentUploads 最近上传列表
func FromRecentUploads(uploads []*etresult.Upload) []*RecentUpload {
	items := make([]*RecentUpload, 0, len(uploads))
	for _, u := range uploads {
		item := &RecentUpload{Code: u.Code, Status: recentStatusVerified}
		if u.Record != nil {
			item.TestName = u.Record.TestName
			item.PatientID = u.Record.PatientID
			item.TestDate = u.Record.TestDate.Format(etresult.DateLayout)
		}
		items = append(items, item)
	}
	return items
}

// FromPayment 支付回执
func FromPayment(p *etresult.Payment) *PaymentResponse {
	return &PaymentResponse{
		Code:          p.Code,
		AccountID:     p.AccountID,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt.UTC().Format(time.RFC3339),
		Message:       paymentMessage,
	}
}

// FromScanSnapshot 扫码会话状态，处理完成后附带展示结果
func FromScanSnapshot(s *etscan.Snapshot) *ScanSessionResponse {
	resp := &ScanSessionResponse{
		ID:         s.ID,
		State:      string(s.State),
		StopReason: string(s.StopReason),
		Processing: s.Processing,
		StartedAt:  s.StartedAt,
	}
	if !s.StoppedAt.IsZero() {
		stopped := s.StoppedAt
		resp.StoppedAt = &stopped
	}
	if s.Outcome != nil {
		resp.Result = RenderOutcome(s.Outcome)
	}
	if s.Err != nil {
		resp.Error = FromError(s.Err)
	}
	return resp
}

// FromError 异步错误展示
func FromError(err error) *ErrorView {
	if be, ok := errorx.As(err); ok {
		return &ErrorView{Kind: string(be.Kind), Message: be.Message}
	}
	return &ErrorView{Kind: "internal", Message: err.Error()}
}

// FromNotifications 通知列表
func FromNotifications(items []notify.Notification) []*NotificationResponse {
	out := make([]*NotificationResponse, 0, len(items))
	for _, n := range items {
		out = append(out, &NotificationResponse{
			Kind:      string(n.Kind),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
