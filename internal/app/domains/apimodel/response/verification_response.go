package response

// 验证结果状态
const (
	StatusVerified = "verified"
	StatusFailed   = "failed"
)

// VerificationView 验证结果展示
type VerificationView struct {
	Status          string         `json:"status" example:"verified"`
	Title           string         `json:"title" example:"Result Verified ✓"`
	Message         string         `json:"message"`
	Code            string         `json:"code" example:"ABC12345"`
	Details         *ResultDetails `json:"details,omitempty"`
	PaymentRequired bool           `json:"payment_required"`
	Reasons         []string       `json:"reasons,omitempty"`
	NextSteps       string         `json:"next_steps,omitempty"`
}

// ResultDetails 命中时展示的结果详情
type ResultDetails struct {
	PatientID string `json:"patient_id" example:"P001"`
	TestName  string `json:"test_name" example:"Blood Test - Complete Blood Count"`
	Date      string `json:"date" example:"2024-09-20"`
	Result    string `json:"result" example:"Normal"`
	Provider  string `json:"provider" example:"City General Hospital"`
	Hash      string `json:"hash" example:"0x1234567890abcdef..."`
	Code      string `json:"code" example:"ABC12345"`
}

// PaymentResponse 支付回执
type PaymentResponse struct {
	Code          string `json:"code"`
	AccountID     string `json:"account_id"`
	TransactionID string `json:"transaction_id"`
	PaidAt        string `json:"paid_at"`
	Message       string `json:"message"`
}
