package mdresult

import (
	"context"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/repo/rpresult"
)

// ResultModule 检测结果模块（查询与写入）
type ResultModule struct {
	resultRepo rpresult.ResultRepository
}

// NewResultModule 创建检测结果模块
func NewResultModule(resultRepo rpresult.ResultRepository) *ResultModule {
	return &ResultModule{
		resultRepo: resultRepo,
	}
}

// Verify 按已规范化的验证码查询，未命中是正常结果而非错误
func (m *ResultModule) Verify(ctx context.Context, code string) (*etresult.Outcome, error) {
	rec, err := m.resultRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return etresult.NotFound(code), nil
	}
	return etresult.Found(code, rec), nil
}

// CreateResult 写入新记录
func (m *ResultModule) CreateResult(ctx context.Context, code string, record *etresult.ResultRecord) error {
	return m.resultRepo.Create(ctx, code, record)
}

// CodeExists 检查验证码是否已被占用
func (m *ResultModule) CodeExists(ctx context.Context, code string) (bool, error) {
	return m.resultRepo.Exists(ctx, code)
}
