package request

// UploadResultRequest 上传检测结果请求（DTO）
// 必填项由领域层校验，以保证钱包检查先于表单校验
type UploadResultRequest struct {
	PatientID       string `json:"patient_id" binding:"max=64"`
	PatientName     string `json:"patient_name" binding:"max=128"`
	TestName        string `json:"test_name" binding:"max=128"`
	TestResult      string `json:"test_result" binding:"max=256"`
	TestDate        string `json:"test_date" binding:"max=10"`
	ProviderName    string `json:"provider_name" binding:"max=128"`
	Notes           string `json:"notes" binding:"max=2000"`
	RequiresPayment bool   `json:"requires_payment"`
}
