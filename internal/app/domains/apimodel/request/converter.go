package request

import "github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"

// ToSubmission 将 Request DTO 转换为领域对象，Timestamp 由上传服务补齐
func (r *UploadResultRequest) ToSubmission() *etresult.Submission {
	return &etresult.Submission{
		PatientID:       r.PatientID,
		PatientName:     r.PatientName,
		TestName:        r.TestName,
		TestResult:      r.TestResult,
		TestDate:        r.TestDate,
		ProviderName:    r.ProviderName,
		Notes:           r.Notes,
		RequiresPayment: r.RequiresPayment,
	}
}
