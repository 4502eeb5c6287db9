package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/notification"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/scan"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/upload"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/verify"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/wallet"
	"github.com/web3labscientis/trustlab/internal/app/server/middlewares"
)

// Handlers 路由依赖的处理器
type Handlers struct {
	Verify       *verify.VerifyHandler
	Upload       *upload.UploadHandler
	Scan         *scan.ScanHandler
	Wallet       *wallet.WalletHandler
	Notification *notification.NotificationHandler
}

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(h *Handlers, log logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "trustalab",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		w := v1.Group("/wallet")
		{
			w.GET("", h.Wallet.Get)
			w.POST("/connect", h.Wallet.Connect)
			w.POST("/disconnect", h.Wallet.Disconnect)
		}

		verifications := v1.Group("/verifications")
		{
			verifications.POST("", h.Verify.Verify)
			verifications.POST("/qr", h.Verify.VerifyPayload)
			verifications.POST("/qr/image", h.Verify.VerifyImage)
			verifications.GET("/:code", h.Verify.Get)
			verifications.POST("/:code/payment", h.Verify.Pay)
		}

		results := v1.Group("/results")
		{
			results.POST("", h.Upload.Create)
			results.GET("/recent", h.Upload.Recent)
			results.GET("/:code/qr", h.Upload.QRCode)
		}

		scans := v1.Group("/scans")
		{
			scans.POST("", h.Scan.Start)
			scans.GET("/:id", h.Scan.Get)
			scans.POST("/:id/frames", h.Scan.PushFrame)
			scans.DELETE("/:id", h.Scan.Stop)
		}

		v1.GET("/notifications", h.Notification.List)
	}

	return r
}
