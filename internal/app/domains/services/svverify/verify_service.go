package svverify

import (
	"context"
	"sync"

	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdledger"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdqr"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdresult"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/latency"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

// 用户可见的提示文案
const (
	msgVerifyFailed   = "Verification failed. Please try again."
	msgQRFailed       = "Unable to process QR code"
	msgPaymentFailed  = "Payment failed. Please try again."
	msgPaymentSuccess = "Payment successful! Transaction recorded on blockchain."
)

// Wallet 支付前置检查依赖的钱包状态
type Wallet interface {
	IsConnected() bool
	AccountID() string
}

// Options 延迟配置
type Options struct {
	VerifyDelay  latency.Strategy
	PaymentDelay latency.Strategy
}

// VerifyService 验证服务，负责验证码查询、二维码验证与支付编排
type VerifyService struct {
	resultModule *mdresult.ResultModule
	ledgerModule *mdledger.LedgerModule
	decoder      mdqr.Decoder
	notifier     notify.Notifier
	logger       logger.Logger
	opts         Options

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewVerifyService 创建验证服务实例
func NewVerifyService(
	resultModule *mdresult.ResultModule,
	ledgerModule *mdledger.LedgerModule,
	decoder mdqr.Decoder,
	notifier notify.Notifier,
	log logger.Logger,
	opts Options,
) *VerifyService {
	if opts.VerifyDelay == nil {
		opts.VerifyDelay = latency.None
	}
	if opts.PaymentDelay == nil {
		opts.PaymentDelay = latency.None
	}
	return &VerifyService{
		resultModule: resultModule,
		ledgerModule: ledgerModule,
		decoder:      decoder,
		notifier:     notifier,
		logger:       log,
		opts:         opts,
		inflight:     make(map[string]struct{}),
	}
}

// Verify 验证码查询（完整业务流程）
// 1. 规范化并校验验证码，失败不进入延迟与查询
// 2. 同一验证码已有查询在进行时拒绝重复提交
// 3. 模拟网络延迟
// 4. 查询结果，未命中作为正常结果返回
func (s *VerifyService) Verify(ctx context.Context, raw string) (*etresult.Outcome, error) {
	code, err := etresult.ValidateCode(raw)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	ctx = logger.WithValue(ctx, logger.KeyVerificationCode, code)

	release, err := s.acquire(code)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	defer release()

	if err := s.opts.VerifyDelay.Wait(ctx); err != nil {
		s.logger.Warnf(ctx, "[Verify] interrupted: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgVerifyFailed)
		return nil, errorx.External(msgVerifyFailed, err)
	}

	outcome, err := s.resultModule.Verify(ctx, code)
	if err != nil {
		s.logger.Errorf(ctx, "[Verify] lookup failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgVerifyFailed)
		return nil, errorx.External(msgVerifyFailed, err)
	}

	s.logger.Infof(ctx, "[Verify] outcome=%s", outcome.Kind)
	return outcome, nil
}

// VerifyPayload 从二维码文本中提取验证码后查询
func (s *VerifyService) VerifyPayload(ctx context.Context, payload string) (*etresult.Outcome, error) {
	code, ok := mdqr.ExtractCode(payload)
	if !ok {
		s.logger.Warnf(ctx, "[Verify] no code in qr payload, len=%d", len(payload))
		s.fail(ctx, errorx.ErrInvalidQRFormat)
		return nil, errorx.ErrInvalidQRFormat
	}
	return s.Verify(ctx, code)
}

// VerifyImage 解码上传的图片后查询
func (s *VerifyService) VerifyImage(ctx context.Context, frame *etscan.Frame) (*etresult.Outcome, error) {
	payload, ok, err := s.decoder.Decode(frame)
	if err != nil {
		s.logger.Warnf(ctx, "[Verify] decode image failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgQRFailed)
		return nil, err
	}
	if !ok {
		s.fail(ctx, errorx.ErrNoQRCode)
		return nil, errorx.ErrNoQRCode
	}
	return s.VerifyPayload(ctx, payload)
}

// Pay 支付流程
// 1. 钱包必须已连接
// 2. 结果存在且需要支付
// 3. 模拟支付延迟后记录交易
func (s *VerifyService) Pay(ctx context.Context, raw string, wallet Wallet) (*etresult.Payment, error) {
	if wallet == nil || !wallet.IsConnected() {
		s.fail(ctx, errorx.ErrWalletNotConnected)
		return nil, errorx.ErrWalletNotConnected
	}

	code, err := etresult.ValidateCode(raw)
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}
	ctx = logger.WithValue(ctx, logger.KeyVerificationCode, code)

	outcome, err := s.resultModule.Verify(ctx, code)
	if err != nil {
		s.logger.Errorf(ctx, "[Verify] payment lookup failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgPaymentFailed)
		return nil, errorx.External(msgPaymentFailed, err)
	}
	if !outcome.IsFound() {
		s.fail(ctx, errorx.ErrResultNotFound)
		return nil, errorx.ErrResultNotFound
	}
	if !outcome.RequiresPayment() {
		s.fail(ctx, errorx.ErrPaymentNotRequired)
		return nil, errorx.ErrPaymentNotRequired
	}

	if err := s.opts.PaymentDelay.Wait(ctx); err != nil {
		s.logger.Warnf(ctx, "[Verify] payment interrupted: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgPaymentFailed)
		return nil, errorx.External(msgPaymentFailed, err)
	}

	payment, err := s.ledgerModule.Pay(ctx, code, wallet.AccountID())
	if err != nil {
		s.logger.Errorf(ctx, "[Verify] payment failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, msgPaymentFailed)
		return nil, err
	}

	s.notifier.Notify(ctx, notify.KindSuccess, msgPaymentSuccess)
	return payment, nil
}

// acquire 占用验证码，返回释放函数
func (s *VerifyService) acquire(code string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inflight[code]; ok {
		return nil, errorx.ErrVerificationPending
	}
	s.inflight[code] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inflight, code)
		s.mu.Unlock()
	}, nil
}

// fail 将业务错误转为用户通知
func (s *VerifyService) fail(ctx context.Context, err error) {
	if be, ok := errorx.As(err); ok {
		s.notifier.Notify(ctx, notify.KindError, be.Message)
		return
	}
	s.notifier.Notify(ctx, notify.KindError, err.Error())
}
