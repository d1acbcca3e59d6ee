package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"web-gateway/internal/platform/converter"

	"github.com/spf13/viper"
)

// Config 應用程式配置結構.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Codec  CodecConfig  `mapstructure:"codec"`
}

// AppConfig 應用程式基本配置.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Debug   bool   `mapstructure:"debug"`
}

// ServerConfig 伺服器配置.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	Timeout         int    `mapstructure:"timeout"`          // 讀寫超時 (秒).
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // 優雅關閉等待時間 (秒).
}

// LogConfig 日誌配置.
type LogConfig struct {
	RotationTimeHours int `mapstructure:"rotation_time_hours"` // 日誌輪轉時間 (小時).
	MaxAgeDays        int `mapstructure:"max_age_days"`        // 日誌保留天數.
	MaxSizeMB         int `mapstructure:"max_size_mb"`         // 單個日誌檔案最大大小 (MB).
}

// CodecConfig 請求/回應本文轉換配置.
type CodecConfig struct {
	DateFormat string `mapstructure:"date_format"` // Go time layout.
	TimeZone   string `mapstructure:"time_zone"`   // IANA 時區，空值為 Local.
	Charset    string `mapstructure:"charset"`     // 文字轉換器預設字元集.
}

// 轉換預設值沿用轉換器的定義.
const (
	DefaultDateFormat = converter.DefaultDateLayout
	DefaultCharset    = converter.DefaultCharset
)

var (
	config *Config
	// ENV 當前環境變數.
	ENV string = "local"
)

// Load 載入設定檔.
func Load(testCfg ...*Config) error {
	// 直接傳入配置（主要用於測試）
	if len(testCfg) > 0 && testCfg[0] != nil {
		if err := validateConfig(testCfg[0]); err != nil {
			return fmt.Errorf("配置驗證失敗: %w", err)
		}
		config = testCfg[0]
		return nil
	}

	v := viper.New()

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
		// 從檔案名稱推斷環境
		baseName := filepath.Base(configPath)
		ENV = strings.TrimSuffix(baseName, filepath.Ext(baseName))
	} else {
		v.SetConfigName(ENV)
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
	}

	v.SetDefault("codec.date_format", DefaultDateFormat)
	v.SetDefault("codec.charset", DefaultCharset)
	v.SetDefault("server.shutdown_timeout", 30)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("讀取配置檔案失敗: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("解析配置失敗: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("配置驗證失敗: %w", err)
	}

	config = cfg
	return nil
}

// Get 取得設定.
func Get() *Config {
	return config
}

// SetEnv 設定環境.
func SetEnv(env string) {
	ENV = env
}

// GetEnv 取得當前環境.
func GetEnv() string {
	return ENV
}

// validateConfig 驗證配置的有效性
func validateConfig(cfg *Config) error {
	if cfg.App.Name == "" {
		return fmt.Errorf("應用程式名稱不能為空")
	}
	if cfg.App.Version == "" {
		return fmt.Errorf("應用程式版本不能為空")
	}

	if cfg.Server.Port == "" {
		return fmt.Errorf("伺服器端口不能為空")
	}
	if cfg.Server.Timeout <= 0 {
		return fmt.Errorf("伺服器超時時間必須大於 0")
	}

	if cfg.Log.RotationTimeHours <= 0 {
		return fmt.Errorf("日誌輪轉時間必須大於 0")
	}
	if cfg.Log.MaxAgeDays <= 0 {
		return fmt.Errorf("日誌保留天數必須大於 0")
	}
	if cfg.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("日誌檔案最大大小必須大於 0")
	}

	if cfg.Codec.TimeZone != "" {
		if _, err := time.LoadLocation(cfg.Codec.TimeZone); err != nil {
			return fmt.Errorf("無效的時區 %q: %w", cfg.Codec.TimeZone, err)
		}
	}

	return nil
}

// IsDebug 檢查是否為除錯模式
func IsDebug() bool {
	if config != nil {
		return config.App.Debug
	}
	return false
}

// GetServerAddr 取得伺服器地址
func GetServerAddr() string {
	if config != nil {
		return fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)
	}
	return "localhost:8080"
}

// ShutdownTimeout 取得優雅關閉等待時間
func ShutdownTimeout() time.Duration {
	if config != nil && config.Server.ShutdownTimeout > 0 {
		return time.Duration(config.Server.ShutdownTimeout) * time.Second
	}
	return 30 * time.Second
}

// DateLayout 取得日期欄位的序列化格式
func (c CodecConfig) DateLayout() string {
	if c.DateFormat == "" {
		return DefaultDateFormat
	}
	return c.DateFormat
}

// Location 取得日期欄位的時區
func (c CodecConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// TextCharset 取得文字轉換器的字元集
func (c CodecConfig) TextCharset() string {
	if c.Charset == "" {
		return DefaultCharset
	}
	return c.Charset
}
