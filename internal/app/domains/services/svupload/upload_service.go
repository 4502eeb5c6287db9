package svupload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdledger"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdqr"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

const (
	msgUploadSuccess = "Test result successfully uploaded to blockchain!"
	msgUploadFailed  = "Failed to upload result to blockchain. Please try again."
	msgQRFailed      = "Failed to generate QR code"

	defaultCodeAttempts = 5
	defaultRecentLimit  = 5
)

// CodeGenerator 验证码生成
type CodeGenerator interface {
	VerificationCode() string
}

// Wallet 上传前置检查依赖的钱包状态
type Wallet interface {
	IsConnected() bool
}

// Options 上传服务配置
type Options struct {
	PublicBaseURL string
	CodeAttempts  int
	RecentLimit   int
}

// UploadService 上传服务，负责检测结果上链与二维码生成
type UploadService struct {
	resultModule *mdresult.ResultModule
	ledgerModule *mdledger.LedgerModule
	encoder      mdqr.Encoder
	codes        CodeGenerator
	wallet       Wallet
	notifier     notify.Notifier
	logger       logger.Logger
	opts         Options

	mu     sync.RWMutex
	recent []*etresult.Upload

	// 已分配但尚未写入存储的验证码
	codeMu   sync.Mutex
	reserved map[string]struct{}
}

// NewUploadService 创建上传服务实例
func NewUploadService(
	resultModule *mdresult.ResultModule,
	ledgerModule *mdledger.LedgerModule,
	encoder mdqr.Encoder,
	codes CodeGenerator,
	wallet Wallet,
	notifier notify.Notifier,
	log logger.Logger,
	opts Options,
) *UploadService {
	if opts.CodeAttempts <= 0 {
		opts.CodeAttempts = defaultCodeAttempts
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}
	return &UploadService{
		resultModule: resultModule,
		ledgerModule: ledgerModule,
		encoder:      encoder,
		codes:        codes,
		wallet:       wallet,
		notifier:     notifier,
		logger:       log,
		opts:         opts,
		reserved:     make(map[string]struct{}),
	}
}

// Upload 上传检测结果（完整业务流程）
// 1. 钱包必须已连接
// 2. 校验表单
// 3. 分配未占用的验证码
// 4. 计算数据哈希并模拟上链
// 5. 写入结果存储
// 6. 生成二维码，失败不影响上传结果
func (s *UploadService) Upload(ctx context.Context, sub *etresult.Submission) (*etresult.Upload, error) {
	if !s.wallet.IsConnected() {
		s.notifier.Notify(ctx, notify.KindError, errorx.ErrWalletNotConnected.Message)
		return nil, errorx.ErrWalletNotConnected
	}

	if err := sub.Validate(); err != nil {
		if be, ok := errorx.As(err); ok {
			s.notifier.Notify(ctx, notify.KindError, be.Message)
		}
		return nil, err
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now().UTC()
	}

	upload, err := s.submit(ctx, sub)
	if err != nil {
		s.logger.Errorf(ctx, "[Upload] failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgUploadFailed)
		return nil, err
	}
	ctx = logger.WithValue(ctx, logger.KeyVerificationCode, upload.Code)

	// 6. 生成二维码
	payload, err := mdqr.BuildPayload(upload.Code, s.opts.PublicBaseURL)
	if err == nil {
		upload.QRPayload = payload
		upload.QRCode, err = s.encoder.Encode(payload)
	}
	if err != nil {
		s.logger.Warnf(ctx, "[Upload] generate qr code failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgQRFailed)
	}

	s.remember(upload)
	s.logger.Infof(ctx, "[Upload] success: tx=%s", upload.Receipt.TransactionID)
	s.notifier.Notify(ctx, notify.KindSuccess, msgUploadSuccess)
	return upload, nil
}

func (s *UploadService) submit(ctx context.Context, sub *etresult.Submission) (*etresult.Upload, error) {
	// 3. 分配验证码，写入存储前一直占用
	code, release, err := s.allocateCode(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	// 4. 数据哈希 + 模拟上链
	hash, err := mdledger.DataHash(sub)
	if err != nil {
		return nil, err
	}
	receipt, err := s.ledgerModule.Submit(ctx, code, hash)
	if err != nil {
		return nil, fmt.Errorf("submit to ledger failed: %w", err)
	}

	// 5. 写入存储
	record, err := etresult.NewResultRecord(sub, hash)
	if err != nil {
		return nil, err
	}
	if err := s.resultModule.CreateResult(ctx, code, record); err != nil {
		return nil, fmt.Errorf("save result failed: %w", err)
	}

	return &etresult.Upload{
		Code:      code,
		Record:    record.Clone(),
		DataHash:  hash,
		Receipt:   receipt,
		CreatedAt: time.Now(),
	}, nil
}

// allocateCode 生成验证码，与已有记录或进行中的上传冲突时重新生成
func (s *UploadService) allocateCode(ctx context.Context) (string, func(), error) {
	for i := 0; i < s.opts.CodeAttempts; i++ {
		code := s.codes.VerificationCode()
		if !s.reserve(code) {
			s.logger.Debugf(ctx, "[Upload] code in flight: %s", code)
			continue
		}

		exists, err := s.resultModule.CodeExists(ctx, code)
		if err != nil {
			s.unreserve(code)
			return "", nil, fmt.Errorf("check code exists failed: %w", err)
		}
		if !exists {
			return code, func() { s.unreserve(code) }, nil
		}
		s.unreserve(code)
		s.logger.Debugf(ctx, "[Upload] code collision: %s", code)
	}
	return "", nil, errorx.ErrDuplicateCode
}

func (s *UploadService) reserve(code string) bool {
	s.codeMu.Lock()
	defer s.codeMu.Unlock()

	if _, ok := s.reserved[code]; ok {
		return false
	}
	s.reserved[code] = struct{}{}
	return true
}

func (s *UploadService) unreserve(code string) {
	s.codeMu.Lock()
	delete(s.reserved, code)
	s.codeMu.Unlock()
}

func (s *UploadService) remember(upload *etresult.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recent = append(s.recent, upload)
	if len(s.recent) > s.opts.RecentLimit {
		s.recent = s.recent[len(s.recent)-s.opts.RecentLimit:]
	}
}

// Recent 最近上传，最新的在前
func (s *UploadService) Recent() []*etresult.Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*etresult.Upload, 0, len(s.recent))
	for i := len(s.recent) - 1; i >= 0; i-- {
		out = append(out, s.recent[i])
	}
	return out
}

// QRCode 返回已存储验证码的二维码 PNG
func (s *UploadService) QRCode(ctx context.Context, raw string) ([]byte, error) {
	code, err := etresult.ValidateCode(raw)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	for _, u := range s.recent {
		if u.Code == code && len(u.QRCode) > 0 {
			png := u.QRCode
			s.mu.RUnlock()
			return png, nil
		}
	}
	s.mu.RUnlock()

	exists, err := s.resultModule.CodeExists(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("check code exists failed: %w", err)
	}
	if !exists {
		return nil, errorx.ErrResultNotFound
	}

	payload, err := mdqr.BuildPayload(code, s.opts.PublicBaseURL)
	if err != nil {
		return nil, errorx.External(msgQRFailed, err)
	}
	return s.encoder.Encode(payload)
}
