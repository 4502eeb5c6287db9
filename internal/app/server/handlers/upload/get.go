package upload

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// Recent 最近 5 次上传
// GET /api/v1/results/recent
func (h *UploadHandler) Recent(c *gin.Context) {
	ginx.Success(c, response.FromRecentUploads(h.uploadService.Recent()))
}

// QRCode 下载二维码 PNG
// GET /api/v1/results/:code/qr
func (h *UploadHandler) QRCode(c *gin.Context) {
	png, err := h.uploadService.QRCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		ginx.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", qrFileName))
	c.Data(http.StatusOK, "image/png", png)
}
