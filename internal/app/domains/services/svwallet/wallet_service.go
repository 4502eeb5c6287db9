package svwallet

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

// PairingResult 钱包配对结果
type PairingResult struct {
	AccountID string
	Topic     string
	Network   string
}

// Pairer 钱包配对 SDK 边界
type Pairer interface {
	Pair(ctx context.Context) (*PairingResult, error)
	Unpair(ctx context.Context, topic string) error
}

// Adapter 页面流程依赖的钱包能力
type Adapter interface {
	Connect(ctx context.Context) (*PairingResult, error)
	Disconnect(ctx context.Context) error
	IsConnected() bool
	AccountID() string
	Notify(ctx context.Context, kind notify.Kind, message string)
}

// StaticPairer 演示用配对器，始终返回配置中的账号
type StaticPairer struct {
	Account string
	Network string
}

var errEmptyAccount = errors.New("wallet account id is not configured")

// Pair 实现 Pairer
func (p *StaticPairer) Pair(ctx context.Context) (*PairingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Account == "" {
		return nil, errEmptyAccount
	}
	return &PairingResult{
		AccountID: p.Account,
		Topic:     uuid.New().String(),
		Network:   p.Network,
	}, nil
}

// Unpair 实现 Pairer
func (p *StaticPairer) Unpair(ctx context.Context, topic string) error {
	return ctx.Err()
}

// WalletService 钱包连接服务
type WalletService struct {
	pairer    Pairer
	notifier  notify.Notifier
	logger    logger.Logger
	connected *atomic.Bool
	mu        sync.Mutex
	session   *PairingResult
}

// NewWalletService 创建钱包服务
func NewWalletService(pairer Pairer, notifier notify.Notifier, log logger.Logger) *WalletService {
	return &WalletService{
		pairer:    pairer,
		notifier:  notifier,
		logger:    log,
		connected: atomic.NewBool(false),
	}
}

// Connect 发起配对，已连接时直接返回当前会话
func (s *WalletService) Connect(ctx context.Context) (*PairingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		cp := *s.session
		return &cp, nil
	}

	res, err := s.pairer.Pair(ctx)
	if err != nil {
		s.logger.Warnf(ctx, "[Wallet] pair failed: %v", err)
		s.notifier.Notify(ctx, notify.KindError, "Failed to connect wallet")
		return nil, errorx.External("Failed to connect wallet", err)
	}

	s.session = res
	s.connected.Store(true)
	s.logger.Infof(ctx, "[Wallet] connected: account=%s, network=%s", res.AccountID, res.Network)
	s.notifier.Notify(ctx, notify.KindSuccess, "Wallet connected: "+FormatAccountID(res.AccountID))

	cp := *res
	return &cp, nil
}

// Disconnect 断开连接，未连接时为空操作
func (s *WalletService) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil
	}
	if err := s.pairer.Unpair(ctx, s.session.Topic); err != nil {
		// 本地状态仍然清理
		s.logger.Warnf(ctx, "[Wallet] unpair failed: %v", err)
	}

	s.session = nil
	s.connected.Store(false)
	s.notifier.Notify(ctx, notify.KindInfo, "Wallet disconnected")
	return nil
}

// IsConnected 是否已连接
func (s *WalletService) IsConnected() bool {
	return s.connected.Load()
}

// AccountID 当前账号，未连接时为空
func (s *WalletService) AccountID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ""
	}
	return s.session.AccountID
}

// Network 当前网络，未连接时为空
func (s *WalletService) Network() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ""
	}
	return s.session.Network
}

// Notify 转发到通知中心
func (s *WalletService) Notify(ctx context.Context, kind notify.Kind, message string) {
	s.notifier.Notify(ctx, kind, message)
}

// FormatAccountID 账号展示格式：超过 12 位时保留前 6 位和后 4 位
func FormatAccountID(accountID string) string {
	if len(accountID) <= 12 {
		return accountID
	}
	return accountID[:6] + "..." + accountID[len(accountID)-4:]
}
