package response

import "time"

// ScanSessionResponse 扫码会话状态
type ScanSessionResponse struct {
	ID         string            `json:"id"`
	State      string            `json:"state" example:"ACTIVE"`
	StopReason string            `json:"stop_reason,omitempty" example:"DECODED"`
	Processing bool              `json:"processing"`
	Result     *VerificationView `json:"result,omitempty"`
	Error      *ErrorView        `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	StoppedAt  *time.Time        `json:"stopped_at,omitempty"`
}

// ErrorView 异步流程中的错误
type ErrorView struct {
	Kind    string `json:"kind" example:"validation"`
	Message string `json:"message"`
}
