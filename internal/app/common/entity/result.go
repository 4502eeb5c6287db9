package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Result 检测结果持久化对象
type Result struct {
	Code            string         `gorm:"column:code;primaryKey;type:char(8)"`
	PatientID       string         `gorm:"column:patient_id;type:varchar(64);not null;index:idx_patient"`
	PatientName     string         `gorm:"column:patient_name;type:varchar(255)"`
	TestName        string         `gorm:"column:test_name;type:varchar(255);not null"`
	Result          string         `gorm:"column:result;type:text;not null"`
	TestDate        datatypes.Date `gorm:"column:test_date;not null"`
	Provider        string         `gorm:"column:provider;type:varchar(255);not null"`
	Notes           string         `gorm:"column:notes;type:text"`
	RequiresPayment bool           `gorm:"column:requires_payment;not null;default:false"`
	Hash            string         `gorm:"column:hash;type:varchar(128);not null"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null;index:idx_created_at"`
}

// TableName 指定表名
func (Result) TableName() string {
	return "results"
}
