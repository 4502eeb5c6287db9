package verify

import (
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svverify"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svwallet"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// maxImageBytes 上传图片大小上限
const maxImageBytes = 8 << 20

// VerifyHandler 验证 HTTP 处理器
type VerifyHandler struct {
	verifyService *svverify.VerifyService
	walletService *svwallet.WalletService
	logger        logger.Logger
	maxPixels     int
}

// NewVerifyHandler 创建验证处理器实例
func NewVerifyHandler(verifyService *svverify.VerifyService, walletService *svwallet.WalletService, maxPixels int, log logger.Logger) *VerifyHandler {
	return &VerifyHandler{
		verifyService: verifyService,
		walletService: walletService,
		logger:        log,
		maxPixels:     maxPixels,
	}
}
