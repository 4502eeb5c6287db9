package rpresult

import (
	"context"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
)

// ResultRepository 检测结果仓储接口
// 验证码唯一，只增不删
type ResultRepository interface {
	// GetByCode 根据验证码查询，未找到返回 (nil, nil)
	GetByCode(ctx context.Context, code string) (*etresult.ResultRecord, error)

	// Create 写入新记录，验证码已存在时返回 errorx.ErrDuplicateCode
	Create(ctx context.Context, code string, record *etresult.ResultRecord) error

	// Exists 检查验证码是否已被占用
	Exists(ctx context.Context, code string) (bool, error)
}
