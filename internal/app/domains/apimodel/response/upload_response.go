package response

import "time"

// UploadResponse 上传结果
type UploadResponse struct {
	Code          string    `json:"code" example:"K7Q2M9XA"`
	DataHash      string    `json:"data_hash"`
	TransactionID string    `json:"transaction_id" example:"0.0.482913@1727000000000"`
	BlockHash     string    `json:"block_hash"`
	Status        string    `json:"status" example:"Confirmed"`
	QRPayload     string    `json:"qr_payload,omitempty"`
	QRCodePNG     string    `json:"qr_code_png,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// RecentUpload 最近上传条目
type RecentUpload struct {
	Code      string `json:"code"`
	TestName  string `json:"test_name"`
	PatientID string `json:"patient_id"`
	TestDate  string `json:"test_date"`
	Status    string `json:"status" example:"Verified"`
}
