package request

// VerifyCodeRequest 手动输入验证码（空值和长度由业务层校验）
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// VerifyPayloadRequest 前端解码后的二维码文本
type VerifyPayloadRequest struct {
	Payload string `json:"payload" binding:"required"`
}
