// Package configs provides configuration structures and utilities for
// the cache viewer. This file contains tests for the Viper-based
// configuration functionality.
//
// Package configs 提供缓存查看器的配置结构和工具。
// 本文件包含基于Viper的配置功能的测试。
package configs

import (
	"strings"
	"testing"
	"time"
)

// TestViperConfigWithReader tests the configuration loading using a reader
// instead of actual files to avoid filesystem dependencies. It verifies that
// configuration values are correctly parsed from YAML content.
//
// TestViperConfigWithReader 使用读取器而不是实际文件测试配置加载，
// 以避免文件系统依赖。它验证配置值是否正确地从YAML内容解析。
func TestViperConfigWithReader(t *testing.T) {
	// Create a YAML config as a string
	// 创建一个YAML配置字符串
	yamlConfig := `
redis:
  host: "redis.test"
  port: 63791
  db: 3
  pool_size: 8
  dial_timeout: 2s
server:
  host: "127.0.0.1"
  port: 9090
  mode: "test"
scan:
  page_size: 2500
extensions:
  hot_reload:
    enable: true
`

	// Load config from reader
	// 从读取器加载配置
	reader := strings.NewReader(yamlConfig)
	config, err := LoadFromReader(reader, "yaml")
	if err != nil {
		t.Fatalf("Failed to load config from reader: %v", err)
	}

	// Verify config values
	// 验证配置值
	if config.Redis.Host != "redis.test" {
		t.Errorf("Expected Redis.Host to be 'redis.test', got '%s'", config.Redis.Host)
	}
	if config.Redis.Port != 63791 {
		t.Errorf("Expected Redis.Port to be 63791, got %d", config.Redis.Port)
	}
	if config.Redis.DB != 3 {
		t.Errorf("Expected Redis.DB to be 3, got %d", config.Redis.DB)
	}
	if config.Redis.DialTimeout != 2*time.Second {
		t.Errorf("Expected Redis.DialTimeout to be 2s, got %s", config.Redis.DialTimeout)
	}
	if config.Server.Port != 9090 {
		t.Errorf("Expected Server.Port to be 9090, got %d", config.Server.Port)
	}
	if config.Server.Mode != "test" {
		t.Errorf("Expected Server.Mode to be 'test', got '%s'", config.Server.Mode)
	}
	if config.Scan.PageSize != 2500 {
		t.Errorf("Expected Scan.PageSize to be 2500, got %d", config.Scan.PageSize)
	}
	if !config.Extensions.HotReload.Enable {
		t.Error("Expected Extensions.HotReload.Enable to be true")
	}
}

// TestViperConfigPartialOverride verifies that fields absent from the
// input keep their default values.
//
// TestViperConfigPartialOverride 验证输入中缺失的字段保留其默认值。
func TestViperConfigPartialOverride(t *testing.T) {
	reader := strings.NewReader("redis:\n  db: 7\n")
	config, err := LoadFromReader(reader, "yaml")
	if err != nil {
		t.Fatalf("Failed to load config from reader: %v", err)
	}

	if config.Redis.DB != 7 {
		t.Errorf("Expected Redis.DB to be 7, got %d", config.Redis.DB)
	}
	// Untouched fields keep defaults
	// 未设置的字段保留默认值
	if config.Redis.Host != "127.0.0.1" {
		t.Errorf("Expected Redis.Host to keep default '127.0.0.1', got '%s'", config.Redis.Host)
	}
	if config.Scan.PageSize != 5000 {
		t.Errorf("Expected Scan.PageSize to keep default 5000, got %d", config.Scan.PageSize)
	}
}
