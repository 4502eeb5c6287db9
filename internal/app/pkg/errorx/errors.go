package errorx

import (
	"errors"
	"net/http"
)

// Kind 错误分类
type Kind string

const (
	KindValidation   Kind = "validation"
	KindDecode       Kind = "decode"
	KindDevice       Kind = "device"
	KindExternal     Kind = "external"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

// 业务错误
var (
	ErrEmptyInput          = newSentinel(KindValidation, http.StatusBadRequest, "Please enter a verification code")
	ErrWrongLength         = newSentinel(KindValidation, http.StatusBadRequest, "Verification code must be 8 characters long")
	ErrMissingFields       = newSentinel(KindValidation, http.StatusBadRequest, "Please fill in all required fields")
	ErrImageTooLarge       = newSentinel(KindValidation, http.StatusBadRequest, "Image dimensions are too large")
	ErrInvalidQRFormat     = newSentinel(KindDecode, http.StatusUnprocessableEntity, "Invalid QR code format")
	ErrNoQRCode            = newSentinel(KindDecode, http.StatusUnprocessableEntity, "No QR code found in image")
	ErrCameraUnavailable   = newSentinel(KindDevice, http.StatusServiceUnavailable, "Unable to access camera. Please check permissions.")
	ErrWalletNotConnected  = newSentinel(KindPrecondition, http.StatusPreconditionFailed, "Please connect your wallet first")
	ErrPaymentNotRequired  = newSentinel(KindPrecondition, http.StatusConflict, "This result does not require payment")
	ErrVerificationPending = newSentinel(KindConflict, http.StatusConflict, "A verification for this code is already in progress")
	ErrDuplicateCode       = newSentinel(KindConflict, http.StatusConflict, "Verification code already exists")
	ErrSessionNotFound     = newSentinel(KindNotFound, http.StatusNotFound, "Scan session not found")
	ErrSessionInactive     = newSentinel(KindConflict, http.StatusConflict, "Scan session is not active")
	ErrResultNotFound      = newSentinel(KindNotFound, http.StatusNotFound, "Result not found")
)

// BusinessError 业务错误结构
type BusinessError struct {
	Kind    Kind
	Code    int
	Message string
	Details []ErrorDetail
	Err     error
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string
	Info string
}

// Error 实现 error 接口
func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 返回底层错误
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// Is 同类同消息的副本视为同一错误
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	return ok && t.Kind == e.Kind && t.Message == e.Message
}

// WithDetails 返回带详情的副本
func (e *BusinessError) WithDetails(details []ErrorDetail) *BusinessError {
	cp := *e
	cp.Details = details
	return &cp
}

// NewBusinessError 创建业务错误
func NewBusinessError(code int, message string) *BusinessError {
	return &BusinessError{
		Kind:    KindValidation,
		Code:    code,
		Message: message,
	}
}

func newSentinel(kind Kind, code int, message string) *BusinessError {
	return &BusinessError{Kind: kind, Code: code, Message: message}
}

// Validation 创建校验错误
func Validation(message string) *BusinessError {
	return newSentinel(KindValidation, http.StatusBadRequest, message)
}

// Device 设备错误（摄像头权限、设备不可用），可由用户重试
func Device(message string, cause error) *BusinessError {
	return &BusinessError{Kind: KindDevice, Code: http.StatusServiceUnavailable, Message: message, Err: cause}
}

// External 外部服务错误（编解码库、钱包 SDK）
func External(message string, cause error) *BusinessError {
	return &BusinessError{Kind: KindExternal, Code: http.StatusBadGateway, Message: message, Err: cause}
}

// As 提取 BusinessError
func As(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// IsKind 判断错误分类
func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}
