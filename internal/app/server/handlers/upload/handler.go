package upload

import (
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svupload"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// qrFileName 二维码下载文件名
const qrFileName = "trustalab-qr-code.png"

// UploadHandler 检测结果上传 HTTP 处理器
type UploadHandler struct {
	uploadService *svupload.UploadService
	logger        logger.Logger
}

// NewUploadHandler 创建上传处理器实例
func NewUploadHandler(uploadService *svupload.UploadService, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        log,
	}
}
