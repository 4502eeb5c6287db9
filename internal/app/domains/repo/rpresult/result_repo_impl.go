package rpresult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/web3labscientis/trustlab/internal/app/common/entity"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

// ResultRepositoryImpl 检测结果仓储实现（MySQL）
type ResultRepositoryImpl struct {
	db *gorm.DB
}

// NewResultRepository 创建检测结果仓储实例
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &ResultRepositoryImpl{db: db}
}

// EnsureSchema 建表并写入种子数据（已存在的验证码保持不变）
func EnsureSchema(ctx context.Context, db *gorm.DB, seed map[string]*etresult.ResultRecord) error {
	if err := db.WithContext(ctx).AutoMigrate(&entity.Result{}); err != nil {
		return fmt.Errorf("migrate results table failed: %w", err)
	}
	if len(seed) == 0 {
		return nil
	}

	pos := make([]*entity.Result, 0, len(seed))
	for code, rec := range seed {
		pos = append(pos, toGormModel(code, rec))
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&pos).Error
	if err != nil {
		return fmt.Errorf("seed results failed: %w", err)
	}
	return nil
}

// GetByCode 根据验证码查询，将 GORM 模型转换为领域对象
func (r *ResultRepositoryImpl) GetByCode(ctx context.Context, code string) (*etresult.ResultRecord, error) {
	var po entity.Result
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainModel(&po), nil
}

// Create 写入新记录
func (r *ResultRepositoryImpl) Create(ctx context.Context, code string, record *etresult.ResultRecord) error {
	exists, err := r.Exists(ctx, code)
	if err != nil {
		return err
	}
	if exists {
		return errorx.ErrDuplicateCode
	}
	return r.db.WithContext(ctx).Create(toGormModel(code, record)).Error
}

// Exists 检查验证码是否存在
func (r *ResultRepositoryImpl) Exists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Result{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// toGormModel 领域对象转换为 GORM 模型
func toGormModel(code string, rec *etresult.ResultRecord) *entity.Result {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &entity.Result{
		Code:            code,
		PatientID:       rec.PatientID,
		PatientName:     rec.PatientName,
		TestName:        rec.TestName,
		Result:          rec.Result,
		TestDate:        datatypes.Date(rec.TestDate),
		Provider:        rec.Provider,
		Notes:           rec.Notes,
		RequiresPayment: rec.RequiresPayment,
		Hash:            rec.Hash,
		CreatedAt:       createdAt,
	}
}

// toDomainModel GORM 模型转换为领域对象
func toDomainModel(po *entity.Result) *etresult.ResultRecord {
	return &etresult.ResultRecord{
		PatientID:       po.PatientID,
		PatientName:     po.PatientName,
		TestName:        po.TestName,
		Result:          po.Result,
		TestDate:        time.Time(po.TestDate),
		Provider:        po.Provider,
		Notes:           po.Notes,
		RequiresPayment: po.RequiresPayment,
		Hash:            po.Hash,
		CreatedAt:       po.CreatedAt,
	}
}
