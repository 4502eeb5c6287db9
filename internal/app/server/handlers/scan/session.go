package scan

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etscan"
	"github.com/web3labscientis/trustlab/internal/app/pkg/errorx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// Start godoc
// @Summary      开始扫码
// @Description  获取媒体流并开始轮询解码，已有会话会先被停止
// @Tags         scans
// @Produce      json
// @Success      200 {object} ginx.Response{data=response.ScanSessionResponse}
// @Failure      503 {object} ginx.Response "摄像头不可用"
// @Router       /scans [post]
func (h *ScanHandler) Start(c *gin.Context) {
	snap, err := h.scanService.Start(c.Request.Context())
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromScanSnapshot(snap))
}

// Get 查询会话状态，解码命中并处理完成后附带验证结果
// GET /api/v1/scans/:id
func (h *ScanHandler) Get(c *gin.Context) {
	snap, err := h.scanService.Get(c.Param("id"))
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromScanSnapshot(snap))
}

// Stop 用户停止扫码
// DELETE /api/v1/scans/:id
func (h *ScanHandler) Stop(c *gin.Context) {
	snap, err := h.scanService.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromScanSnapshot(snap))
}

// PushFrame 上传一帧摄像头画面
// POST /api/v1/scans/:id/frames (multipart, field: frame)
func (h *ScanHandler) PushFrame(c *gin.Context) {
	id := c.Param("id")
	ctx := logger.WithValue(c.Request.Context(), logger.KeyScanSessionID, id)

	fh, err := c.FormFile("frame")
	if err != nil {
		ginx.BadRequest(c, "frame file is required")
		return
	}
	if fh.Size > maxFrameBytes {
		ginx.BadRequest(c, "frame file is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		ginx.BadRequest(c, "frame file is unreadable")
		return
	}
	defer f.Close()

	frame, err := etscan.DecodeFrame(f, h.maxPixels)
	if errors.Is(err, etscan.ErrFrameTooLarge) {
		ginx.FromError(c, errorx.ErrImageTooLarge)
		return
	}
	if err != nil {
		h.logger.Debugf(ctx, "[Scan] decode frame upload failed: %v", err)
		ginx.BadRequest(c, "unsupported image format")
		return
	}

	if err := h.scanService.PushFrame(id, frame); err != nil {
		ginx.FromError(c, err)
		return
	}

	snap, err := h.scanService.Get(id)
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromScanSnapshot(snap))
}
