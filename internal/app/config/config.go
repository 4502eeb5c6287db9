package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 存储驱动
const (
	StoreDriverMemory = "memory"
	StoreDriverMySQL  = "mysql"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	MySQL   MySQLConfig   `mapstructure:"mysql"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Verify  VerifyConfig  `mapstructure:"verify"`
	Upload  UploadConfig  `mapstructure:"upload"`
	Payment PaymentConfig `mapstructure:"payment"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Wallet  WalletConfig  `mapstructure:"wallet"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port          string `mapstructure:"port"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// StoreConfig 结果存储配置，memory 每次启动从种子数据重建
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Seed   bool   `mapstructure:"seed"`
}

type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置，Addr 为空时不发布上链回执
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type VerifyConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type UploadConfig struct {
	Delay  time.Duration `mapstructure:"delay"`
	QRSize int           `mapstructure:"qr_size"`
}

type PaymentConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type ScanConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxFramePixels int           `mapstructure:"max_frame_pixels"`
}

type WalletConfig struct {
	AccountID string `mapstructure:"account_id"`
	Network   string `mapstructure:"network"`
}

// Load 从配置文件加载配置，环境变量 TRUSTLAB_* 可覆盖
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TRUSTLAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// LoadDefault 加载默认配置文件路径
func LoadDefault() (*Config, error) {
	return Load("config/config.yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "trustalab")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.public_base_url", "http://localhost:8080")
	v.SetDefault("store.driver", StoreDriverMemory)
	v.SetDefault("store.seed", true)
	v.SetDefault("verify.delay", 2*time.Second)
	v.SetDefault("upload.delay", 3*time.Second)
	v.SetDefault("upload.qr_size", 200)
	v.SetDefault("payment.delay", 3*time.Second)
	v.SetDefault("scan.enabled", true)
	v.SetDefault("scan.poll_interval", 100*time.Millisecond)
	v.SetDefault("scan.max_frame_pixels", 4096*4096)
	v.SetDefault("wallet.account_id", "0.0.4829137")
	v.SetDefault("wallet.network", "testnet")
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("mysql dsn is required when store.driver is mysql")
		}
	default:
		return fmt.Errorf("unknown store driver: %q", c.Store.Driver)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Scan.PollInterval <= 0 {
		return fmt.Errorf("scan poll_interval must be positive")
	}
	if c.Scan.MaxFramePixels <= 0 {
		return fmt.Errorf("scan max_frame_pixels must be positive")
	}
	if c.Verify.Delay < 0 || c.Upload.Delay < 0 || c.Payment.Delay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.Upload.QRSize <= 0 {
		return fmt.Errorf("upload qr_size must be positive")
	}
	return nil
}
