package mdledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/idgen"
	"github.com/web3labscientis/trustlab/internal/app/pkg/latency"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// Publisher 回执广播通道（可选）
type Publisher interface {
	Publish(ctx context.Context, channel string, message string) error
}

// ReceiptMessage 广播的回执消息
type ReceiptMessage struct {
	Code          string    `json:"code"`
	DataHash      string    `json:"data_hash"`
	TransactionID string    `json:"transaction_id"`
	BlockHash     string    `json:"block_hash"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// LedgerModule 模拟上链模块
// 职责：
// 1. 计算提交数据的展示用哈希
// 2. 经过可注入的延迟后生成交易回执
// 3. 配置了 Publisher 时广播回执，失败只记日志
type LedgerModule struct {
	ids       *idgen.Generator
	delay     latency.Strategy
	publisher Publisher
	logger    logger.Logger
	now       func() time.Time
}

// NewLedgerModule 创建模拟上链模块，publisher 可为 nil
func NewLedgerModule(ids *idgen.Generator, delay latency.Strategy, publisher Publisher, log logger.Logger) *LedgerModule {
	return &LedgerModule{
		ids:       ids,
		delay:     delay,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// DataHash 对提交表单的 JSON 计算 SHA-256，取前 32 位十六进制
func DataHash(sub *etresult.Submission) (string, error) {
	if sub == nil {
		return "", etresult.ErrNilSubmission
	}
	b, err := json.Marshal(sub)
	if err != nil {
		return "", fmt.Errorf("marshal submission failed: %w", err)
	}
	sum := sha256.Sum256(b)
	return "0x" + hex.EncodeToString(sum[:])[:32] + "...", nil
}

// ReceiptChannel 回执频道命名规则
func ReceiptChannel(code string) string {
	return fmt.Sprintf("ledger:receipt:%s", code)
}

// Submit 提交数据哈希并返回回执
func (m *LedgerModule) Submit(ctx context.Context, code, dataHash string) (*etresult.Receipt, error) {
	if err := m.delay.Wait(ctx); err != nil {
		return nil, err
	}

	now := m.now()
	receipt := &etresult.Receipt{
		TransactionID: m.ids.TransactionID(now),
		BlockHash:     m.ids.BlockHash(),
		Status:        etresult.ReceiptStatusSuccess,
	}
	m.logger.Infof(ctx, "[Ledger] submitted: code=%s, tx=%s", code, receipt.TransactionID)

	if m.publisher != nil {
		m.publish(ctx, code, dataHash, receipt, now)
	}
	return receipt, nil
}

// Pay 生成支付交易回执，支付延迟由调用方控制
func (m *LedgerModule) Pay(ctx context.Context, code, accountID string) (*etresult.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := m.now()
	m.logger.Infof(ctx, "[Ledger] payment recorded: code=%s, account=%s", code, accountID)
	return &etresult.Payment{
		Code:          code,
		AccountID:     accountID,
		TransactionID: m.ids.TransactionID(now),
		PaidAt:        now,
	}, nil
}

func (m *LedgerModule) publish(ctx context.Context, code, dataHash string, receipt *etresult.Receipt, at time.Time) {
	msg, err := json.Marshal(ReceiptMessage{
		Code:          code,
		DataHash:      dataHash,
		TransactionID: receipt.TransactionID,
		BlockHash:     receipt.BlockHash,
		Status:        receipt.Status,
		SubmittedAt:   at,
	})
	if err != nil {
		m.logger.Warnf(ctx, "[Ledger] marshal receipt failed: %v", err)
		return
	}
	if err := m.publisher.Publish(ctx, ReceiptChannel(code), string(msg)); err != nil {
		m.logger.Warnf(ctx, "[Ledger] publish receipt failed: code=%s, err=%v", code, err)
	}
}
