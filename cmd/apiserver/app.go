package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/web3labscientis/trustlab/internal/app/config"
	"github.com/web3labscientis/trustlab/internal/app/domains/entity/etresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdledger"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdqr"
	"github.com/web3labscientis/trustlab/internal/app/domains/modules/mdresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/repo/rpresult"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svscan"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svupload"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svverify"
	"github.com/web3labscientis/trustlab/internal/app/domains/services/svwallet"
	"github.com/web3labscientis/trustlab/internal/app/infra/media"
	"github.com/web3labscientis/trustlab/internal/app/infra/persistence/mysql"
	"github.com/web3labscientis/trustlab/internal/app/infra/persistence/redis"
	"github.com/web3labscientis/trustlab/internal/app/pkg/idgen"
	"github.com/web3labscientis/trustlab/internal/app/pkg/latency"
	"github.com/web3labscientis/trustlab/internal/app/pkg/logger"
	"github.com/web3labscientis/trustlab/internal/app/pkg/notify"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/notification"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/scan"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/upload"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/verify"
	"github.com/web3labscientis/trustlab/internal/app/server/handlers/wallet"
	"github.com/web3labscientis/trustlab/internal/app/server/routers"
)

// App 应用实例
type App struct {
	Engine      *gin.Engine
	ScanService *svscan.ScanService
}

// InitializeApp 手动组装依赖，返回应用与资源清理函数
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. 结果存储
	repo, closeRepo, err := newResultRepository(ctx, cfg, log)
	if err != nil {
		return nil, func() {}, err
	}
	closers = append(closers, closeRepo)

	// 2. 回执广播（可选）
	var publisher mdledger.Publisher
	if cfg.Redis.Addr != "" {
		client, err := redis.NewPubSubClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("connect redis failed: %w", err)
		}
		publisher = client
		closers = append(closers, func() { _ = client.Close() })
		log.Infof(ctx, "Ledger receipts will be published to redis %s", cfg.Redis.Addr)
	}

	// 3. 模块层
	notes := notify.NewLog(notify.DefaultCapacity, log)
	ids := idgen.NewGenerator(nil)
	resultModule := mdresult.NewResultModule(repo)
	ledgerModule := mdledger.NewLedgerModule(ids, latency.Fixed(cfg.Upload.Delay), publisher, log)
	decoder := mdqr.NewZXingDecoder()
	encoder := mdqr.NewPNGEncoder(cfg.Upload.QRSize)

	// 4. 服务层
	walletService := svwallet.NewWalletService(
		&svwallet.StaticPairer{Account: cfg.Wallet.AccountID, Network: cfg.Wallet.Network},
		notes,
		log,
	)
	verifyService := svverify.NewVerifyService(resultModule, ledgerModule, decoder, notes, log, svverify.Options{
		VerifyDelay:  latency.Fixed(cfg.Verify.Delay),
		PaymentDelay: latency.Fixed(cfg.Payment.Delay),
	})
	uploadService := svupload.NewUploadService(resultModule, ledgerModule, encoder, ids, walletService, notes, log, svupload.Options{
		PublicBaseURL: cfg.Server.PublicBaseURL,
	})
	scanService := svscan.NewScanService(
		media.NewPushSource(cfg.Scan.Enabled),
		decoder,
		verifyService,
		notes,
		log,
		cfg.Scan.PollInterval,
	)

	// 5. 路由
	engine := routers.SetupRoutes(&routers.Handlers{
		Verify:       verify.NewVerifyHandler(verifyService, walletService, cfg.Scan.MaxFramePixels, log),
		Upload:       upload.NewUploadHandler(uploadService, log),
		Scan:         scan.NewScanHandler(scanService, cfg.Scan.MaxFramePixels, log),
		Wallet:       wallet.NewWalletHandler(walletService),
		Notification: notification.NewNotificationHandler(notes),
	}, log)

	return &App{Engine: engine, ScanService: scanService}, cleanup, nil
}

// newResultRepository 按配置选择结果存储
func newResultRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (rpresult.ResultRepository, func(), error) {
	var seed map[string]*etresult.ResultRecord
	if cfg.Store.Seed {
		seed = rpresult.SeedRecords()
	}

	if cfg.Store.Driver != config.StoreDriverMySQL {
		log.Infof(ctx, "Using in-memory result store, seeded=%v", cfg.Store.Seed)
		return rpresult.NewMemoryRepository(seed), func() {}, nil
	}

	db, err := mysql.Open(ctx, cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := rpresult.EnsureSchema(ctx, db, seed); err != nil {
		_ = mysql.Close(db)
		return nil, nil, fmt.Errorf("prepare result schema failed: %w", err)
	}

	log.Infof(ctx, "Using mysql result store, seeded=%v", cfg.Store.Seed)
	return rpresult.NewResultRepository(db), func() { _ = mysql.Close(db) }, nil
}
