package verify

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/request"
	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// Verify godoc
// @Summary      验证码查询
// @Description  规范化并校验验证码后查询检测结果，未命中返回 status=failed 而非错误
// @Tags         verifications
// @Accept       json
// @Produce      json
// @Param        request body request.VerifyCodeRequest true "验证码"
// @Success      200 {object} ginx.Response{data=response.VerificationView}
// @Failure      400 {object} ginx.Response "验证码为空或长度不为 8"
// @Failure      409 {object} ginx.Response "同一验证码正在查询"
// @Router       /verifications [post]
func (h *VerifyHandler) Verify(c *gin.Context) {
	var req request.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}
	h.verify(c, req.Code)
}

// Get 通过链接中的验证码查询
// GET /api/v1/verifications/:code
func (h *VerifyHandler) Get(c *gin.Context) {
	h.verify(c, c.Param("code"))
}

func (h *VerifyHandler) verify(c *gin.Context, code string) {
	outcome, err := h.verifyService.Verify(c.Request.Context(), code)
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.RenderOutcome(outcome))
}
