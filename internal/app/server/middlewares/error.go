package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// 1. 捕获 panic，返回 500 统一结构
// 2. Handler 通过 c.Error 上报且尚未写响应的错误，按业务错误分类输出
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "[HTTP] panic recovered: %v", r)
				if !c.Writer.Written() {
					ginx.InternalError(c, "Internal server error")
				}
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			log.Warnf(c.Request.Context(), "[HTTP] request failed: %v", err)
			ginx.FromError(c, err)
		}
	}
}
