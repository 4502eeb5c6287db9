package verify

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
)

// Pay godoc
// @Summary      支付查看费用
// @Description  仅对需要支付的已验证结果开放，钱包需先连接
// @Tags         verifications
// @Produce      json
// @Param        code path string true "验证码"
// @Success      200 {object} ginx.Response{data=response.PaymentResponse}
// @Failure      404 {object} ginx.Response "结果不存在"
// @Failure      409 {object} ginx.Response "无需支付"
// @Failure      412 {object} ginx.Response "钱包未连接"
// @Router       /verifications/{code}/payment [post]
func (h *VerifyHandler) Pay(c *gin.Context) {
	payment, err := h.verifyService.Pay(c.Request.Context(), c.Param("code"), h.walletService)
	if err != nil {
		ginx.FromError(c, err)
		return
	}
	ginx.Success(c, response.FromPayment(payment))
}
