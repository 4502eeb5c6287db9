package verify

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/request"
	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// VerifyPayload 二维码文本验证
// POST /api/v1/verifications/qr
func (h *VerifyHandler) VerifyPayload(c *gin.Context) {
	var req request.VerifyPayloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	outcome, err := h.verifyService.VerifyPayload(c.Request.Context(), req.Payload)
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.RenderOutcome(outcome))
}

// VerifyImage 上传二维码图片验证
// POST /api/v1/verifications/qr/image (multipart, field: image)
func (h *VerifyHandler) VerifyImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		ginx.BadRequest(c, "image file is required")
		return
	}
	if fh.Size > maxImageBytes {
		ginx.BadRequest(c, "image file is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		ginx.BadRequest(c, "image file is unreadable")
		return
	}
	defer f.Close()

	frame, err := etscan.DecodeFrame(f, h.maxPixels)
	if errors.Is(err, etscan.ErrFrameTooLarge) {
		ginx.FromError(c, errorx.ErrImageTooLarge)
		return
	}
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "[Verify] decode upload failed: %v", err)
		ginx.BadRequest(c, "unsupported image format")
		return
	}

	outcome, err := h.verifyService.VerifyImage(c.Request.Context(), frame)
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.RenderOutcome(outcome))
}
