package wallet

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svwallet"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// WalletHandler 钱包 HTTP 处理器
type WalletHandler struct {
	walletService *svwallet.WalletService
}

// NewWalletHandler 创建钱包处理器实例
func NewWalletHandler(walletService *svwallet.WalletService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Get 当前连接状态
// GET /api/v1/wallet
func (h *WalletHandler) Get(c *gin.Context) {
	ginx.Success(c, h.status())
}

// Connect 连接钱包
// POST /api/v1/wallet/connect
func (h *WalletHandler) Connect(c *gin.Context) {
	if _, err := h.walletService.Connect(c.Request.Context()); err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, h.status())
}

// Disconnect 断开钱包
// POST /api/v1/wallet/disconnect
func (h *WalletHandler) Disconnect(c *gin.Context) {
	if err := h.walletService.Disconnect(c.Request.Context()); err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, h.status())
}

func (h *WalletHandler) status() *response.WalletResponse {
	if !h.walletService.IsConnected() {
		return &response.WalletResponse{}
	}
	account := h.walletService.AccountID()
	return &response.WalletResponse{
		Connected: true,
		AccountID: account,
		Display:   svwallet.FormatAccountID(account),
		Network:   h.walletService.Network(),
	}
}
