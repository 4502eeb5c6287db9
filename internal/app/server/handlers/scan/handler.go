package scan

import (
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// maxFrameBytes 单帧上传大小上限
const maxFrameBytes = 8 << 20

// ScanHandler 扫码会话 HTTP 处理器
type ScanHandler struct {
	scanService *svscan.ScanService
	logger      logger.Logger
	maxPixels   int
}

// NewScanHandler 创建扫码处理器实例
func NewScanHandler(scanService *svscan.ScanService, maxPixels int, log logger.Logger) *ScanHandler {
	return &ScanHandler{
		scanService: scanService,
		logger:      log,
		maxPixels:   maxPixels,
	}
}
