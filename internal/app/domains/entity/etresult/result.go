package etresult

import (
	"errors"
	"strings"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

// DateLayout 检测日期格式
const DateLayout = "2006-01-02"

var (
	ErrNilSubmission = errors.New("submission cannot be nil")
	ErrEmptyHash     = errors.New("data hash cannot be empty")
)

// ResultRecord 检测结果（创建后不可变，只通过 Clone 向外暴露副本）
type ResultRecord struct {
	PatientID       string
	PatientName     string
	TestName        string
	Result          string
	TestDate        time.Time
	Provider        string
	Notes           string
	RequiresPayment bool
	Hash            string
	CreatedAt       time.Time
}

// Clone 返回副本
func (r *ResultRecord) Clone() *ResultRecord {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// Submission 管理端上传的检测结果表单
type Submission struct {
	PatientID       string    `json:"patientId"`
	PatientName     string    `json:"patientName"`
	TestName        string    `json:"testName"`
	TestResult      string    `json:"testResult"`
	TestDate        string    `json:"testDate"`
	ProviderName    string    `json:"providerName"`
	Notes           string    `json:"notes"`
	RequiresPayment bool      `json:"requiresPayment"`
	Timestamp       time.Time `json:"timestamp"`
}

// Validate 校验必填字段与日期格式
func (s *Submission) Validate() error {
	if s == nil {
		return ErrNilSubmission
	}

	required := []struct {
		path  string
		value string
	}{
		{"patient_id", s.PatientID},
		{"patient_name", s.PatientName},
		{"test_name", s.TestName},
		{"test_result", s.TestResult},
		{"test_date", s.TestDate},
		{"provider_name", s.ProviderName},
	}

	var details []errorx.ErrorDetail
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			details = append(details, errorx.ErrorDetail{Path: f.path, Info: f.path + " is required"})
		}
	}
	if len(details) > 0 {
		return errorx.ErrMissingFields.WithDetails(details)
	}

	if _, err := time.Parse(DateLayout, strings.TrimSpace(s.TestDate)); err != nil {
		return errorx.Validation("test_date must be formatted as YYYY-MM-DD")
	}
	return nil
}

// NewResultRecord 根据表单和数据哈希创建检测结果（工厂方法）
func NewResultRecord(s *Submission, hash string) (*ResultRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if hash == "" {
		return nil, ErrEmptyHash
	}

	date, _ := time.Parse(DateLayout, strings.TrimSpace(s.TestDate))
	return &ResultRecord{
		PatientID:       strings.TrimSpace(s.PatientID),
		PatientName:     strings.TrimSpace(s.PatientName),
		TestName:        strings.TrimSpace(s.TestName),
		Result:          strings.TrimSpace(s.TestResult),
		TestDate:        date,
		Provider:        strings.TrimSpace(s.ProviderName),
		Notes:           s.Notes,
		RequiresPayment: s.RequiresPayment,
		Hash:            hash,
		CreatedAt:       time.Now(),
	}, nil
}

// Receipt 模拟上链回执
type Receipt struct {
	TransactionID string
	BlockHash     string
	Status        string
}

// ReceiptStatusSuccess 上链成功
const ReceiptStatusSuccess = "SUCCESS"

// Upload 一次上传的完整结果
type Upload struct {
	Code      string
	Record    *ResultRecord
	DataHash  string
	Receipt   *Receipt
	QRPayload string
	QRCode    []byte // PNG
	CreatedAt time.Time
}

// Payment 支付回执
type Payment struct {
	Code          string
	AccountID     string
	TransactionID string
	PaidAt        time.Time
}
