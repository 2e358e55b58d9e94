// Package configs provides configuration structures and utilities for
// the cache viewer. It offers mechanisms for loading, validating, and
// saving configuration from JSON and YAML files, and an optional
// Viper-backed wrapper with hot reloading.
//
// Package configs 提供缓存查看器的配置结构和工具。
// 它提供从JSON和YAML文件加载、验证和保存配置的机制，
// 以及可选的基于Viper的热重载包装。
package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the cache viewer.
// It contains the settings for the backing Redis instance, the HTTP
// server, and the keyspace scanner.
//
// Config 表示缓存查看器的完整配置。
// 它包含后端Redis实例、HTTP服务器和键空间扫描器的设置。
type Config struct {
	// Redis describes the backing store connection
	// Redis 描述后端存储连接
	Redis RedisConfig `json:"redis" yaml:"redis"`

	// Server configures the HTTP admin API
	// Server 配置HTTP管理API
	Server ServerConfig `json:"server" yaml:"server"`

	// Scan configures the keyspace scanner
	// Scan 配置键空间扫描器
	Scan ScanConfig `json:"scan" yaml:"scan"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions"`
}

// RedisConfig contains the connection settings for the backing Redis
// instance. The viewer is read-mostly and interactive, so the pool is
// small by default.
//
// RedisConfig 包含后端Redis实例的连接设置。
// 查看器以读为主且为交互式使用，因此默认连接池较小。
type RedisConfig struct {
	// Host is the Redis host name or address
	// Host 是Redis主机名或地址
	Host string `json:"host" yaml:"host"`

	// Port is the Redis port
	// Port 是Redis端口
	Port int `json:"port" yaml:"port"`

	// DB is the logical database to browse
	// DB 是要浏览的逻辑数据库
	DB int `json:"db" yaml:"db"`

	// Password authenticates the connection; empty disables AUTH
	// Password 用于连接认证；为空则不认证
	Password string `json:"password" yaml:"password"`

	// PoolSize is the connection pool size (0 = client default)
	// PoolSize 是连接池大小（0 = 客户端默认值）
	PoolSize int `json:"pool_size" yaml:"pool_size"`

	// DialTimeout bounds connection establishment
	// DialTimeout 限制连接建立的时长
	DialTimeout time.Duration `json:"dial_timeout" yaml:"dial_timeout"`
}

// Addr returns the host:port address of the Redis instance.
//
// Addr 返回Redis实例的host:port地址。
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ServerConfig contains settings for the HTTP admin API.
//
// ServerConfig 包含HTTP管理API的设置。
type ServerConfig struct {
	// Host is the listen address; empty listens on all interfaces
	// Host 是监听地址；为空则监听所有网卡
	Host string `json:"host" yaml:"host"`

	// Port is the listen port
	// Port 是监听端口
	Port int `json:"port" yaml:"port"`

	// Mode selects the gin mode ("debug", "release", "test")
	// Mode 选择gin模式（"debug"、"release"、"test"）
	Mode string `json:"mode" yaml:"mode"`
}

// Addr returns the host:port listen address.
//
// Addr 返回host:port监听地址。
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// ScanConfig contains settings for keyspace enumeration.
//
// ScanConfig 包含键空间枚举的设置。
type ScanConfig struct {
	// PageSize is the SCAN count hint: how many keys the store
	// examines per page, not how many matches it returns
	// PageSize 是SCAN的count提示：每页检查的键数量，而非返回的匹配数
	PageSize int64 `json:"page_size" yaml:"page_size"`
}

// ExtensionsConfig contains settings for extensions.
//
// ExtensionsConfig 包含扩展的设置。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload"`
}

// HotReloadConfig contains settings for hot reloading.
//
// HotReloadConfig 包含热重载的设置。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable"`
}

// DefaultConfig returns a new Config with default values.
// The defaults mirror a local development Redis and an admin API on
// port 8080.
//
// DefaultConfig 返回具有默认值的新Config。
//
// Returns:
//   - *Config: A new configuration instance with default values
//
// 返回：
//   - *Config: 具有默认值的新配置实例
func DefaultConfig() *Config {
	return &Config{
		Redis: RedisConfig{
			Host:        "127.0.0.1",
			Port:        6379,
			DB:          0,
			Password:    "",
			PoolSize:    4,
			DialTimeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Host: "",
			Port: 8080,
			Mode: "release",
		},
		Scan: ScanConfig{
			PageSize: 5000,
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable: false,
			},
		},
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically
// detecting the format based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))
	return LoadFromReader(file, strings.TrimPrefix(ext, "."))
}

// LoadFromReader loads configuration from an io.Reader.
// Fields absent from the input keep their default values.
//
// LoadFromReader 从io.Reader加载配置。
// 输入中缺失的字段保留其默认值。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// It supports both YAML and JSON formats, automatically
// selecting the format based on the file extension.
//
// SaveToFile 将配置保存到文件。
// 它支持YAML和JSON格式，根据文件扩展名自动选择格式。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
func (c *Config) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
// It checks that all settings have valid values.
//
// Validate 验证配置。
// 它检查所有设置是否具有有效值。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
func (c *Config) Validate() error {
	// Validate redis settings
	// 验证redis设置
	if c.Redis.Host == "" {
		return fmt.Errorf("redis.host must not be empty")
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("redis.port must be between 1 and 65535")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("redis.db must be non-negative")
	}
	if c.Redis.PoolSize < 0 {
		return fmt.Errorf("redis.pool_size must be non-negative")
	}
	if c.Redis.DialTimeout < 0 {
		return fmt.Errorf("redis.dial_timeout must be non-negative")
	}

	// Validate server settings
	// 验证服务器设置
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
		// Valid modes
		// 有效模式
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}

	// Validate scan settings
	// 验证扫描设置
	if c.Scan.PageSize <= 0 {
		return fmt.Errorf("scan.page_size must be positive")
	}

	return nil
}
