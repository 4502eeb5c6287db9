package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/request"
	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// Create godoc
// @Summary      上传检测结果
// @Description  钱包连接后上传检测结果：生成验证码、模拟上链、生成二维码
// @Tags         results
// @Accept       json
// @Produce      json
// @Param        request body request.UploadResultRequest true "检测结果"
// @Success      200 {object} ginx.Response{data=response.UploadResponse}
// @Failure      400 {object} ginx.Response "必填项缺失"
// @Failure      412 {object} ginx.Response "钱包未连接"
// @Failure      500 {object} ginx.Response "上链失败"
// @Router       /results [post]
func (h *UploadHandler) Create(c *gin.Context) {
	var req request.UploadResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	upload, err := h.uploadService.Upload(c.Request.Context(), req.ToSubmission())
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "[Upload] create failed: %v", err)
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromUpload(upload))
}
