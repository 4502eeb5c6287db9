package rpresult

import (
	"context"
	"sync"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
)

// MemoryRepository 内存仓储，读写由 RWMutex 串行化
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*etresult.ResultRecord
}

// NewMemoryRepository 创建内存仓储并写入种子数据
func NewMemoryRepository(seed map[string]*etresult.ResultRecord) ResultRepository {
	records := make(map[string]*etresult.ResultRecord, len(seed))
	for code, rec := range seed {
		records[code] = rec.Clone()
	}
	return &MemoryRepository{records: records}
}

// GetByCode 返回记录副本
func (r *MemoryRepository) GetByCode(ctx context.Context, code string) (*etresult.ResultRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[code]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// Create 写入记录副本
func (r *MemoryRepository) Create(ctx context.Context, code string, record *etresult.ResultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[code]; ok {
		return errorx.ErrDuplicateCode
	}
	r.records[code] = record.Clone()
	return nil
}

// Exists 检查验证码是否存在
func (r *MemoryRepository) Exists(ctx context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.records[code]
	return ok, nil
}
