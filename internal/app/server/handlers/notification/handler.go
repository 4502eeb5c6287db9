package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/domains/apimodel/response"
	"github.com/web3labscientis/trustlab/internal/app/pkg/ginx"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
)

// NotificationHandler 通知 HTTP 处理器
type NotificationHandler struct {
	log *notify.Log
}

// NewNotificationHandler 创建通知处理器实例
func NewNotificationHandler(log *notify.Log) *NotificationHandler {
	return &NotificationHandler{log: log}
}

// List 最近的通知，最新的在前
// GET /api/v1/notifications?limit=20
func (h *NotificationHandler) List(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			ginx.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	ginx.Success(c, response.FromNotifications(h.log.Recent(limit)))
}
