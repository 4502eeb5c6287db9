package rpresult

import (
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
)

func mustDate(s string) time.Time {
	t, err := time.Parse(etresult.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedRecords 演示用的固定种子数据，每次启动重新构建
func SeedRecords() map[string]*etresult.ResultRecord {
	return map[string]*etresult.ResultRecord{
		"ABC12345": {
			PatientID:       "P001",
			TestName:        "Blood Test - Complete Blood Count",
			Result:          "Normal",
			TestDate:        mustDate("2024-09-20"),
			Provider:        "City General Hospital",
			Hash:            "0x1234567890abcdef...",
			RequiresPayment: false,
		},
		"XYZ98765": {
			PatientID:       "P002",
			TestName:        "COVID-19 PCR Test",
			Result:          "Negative",
			TestDate:        mustDate("2024-09-21"),
			Provider:        "HealthLab Diagnostics",
			Hash:            "0xabcdef1234567890...",
			RequiresPayment: true,
		},
		"DEF54321": {
			PatientID:       "P003",
			TestName:        "Lipid Profile",
			Result:          "Elevated Cholesterol",
			TestDate:        mustDate("2024-09-19"),
			Provider:        "Metro Medical Center",
			Hash:            "0x9876543210fedcba...",
			RequiresPayment: false,
		},
	}
}
