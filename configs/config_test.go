// Package configs provides configuration structures and utilities for
// the cache viewer. This file contains tests for the configuration
// functionality.
//
// Package configs 提供缓存查看器的配置结构和工具。
// 本文件包含配置功能的测试。
package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that DefaultConfig returns a properly initialized Config
// with the expected default values for important settings.
//
// TestDefaultConfig 验证DefaultConfig返回一个正确初始化的Config，
// 包含重要设置的预期默认值。
func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	// Test default values
	// 测试默认值
	if config.Redis.Host != "127.0.0.1" {
		t.Errorf("Expected Redis.Host to be '127.0.0.1', got '%s'", config.Redis.Host)
	}
	if config.Redis.Port != 6379 {
		t.Errorf("Expected Redis.Port to be 6379, got %d", config.Redis.Port)
	}
	if config.Server.Port != 8080 {
		t.Errorf("Expected Server.Port to be 8080, got %d", config.Server.Port)
	}
	if config.Scan.PageSize != 5000 {
		t.Errorf("Expected Scan.PageSize to be 5000, got %d", config.Scan.PageSize)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

// TestAddr verifies the host:port address helpers.
//
// TestAddr 验证host:port地址辅助函数。
func TestAddr(t *testing.T) {
	config := DefaultConfig()
	config.Redis.Host = "redis.internal"
	config.Redis.Port = 63791
	if got := config.Redis.Addr(); got != "redis.internal:63791" {
		t.Errorf("Expected Redis.Addr() to be 'redis.internal:63791', got '%s'", got)
	}

	config.Server.Host = "127.0.0.1"
	config.Server.Port = 9000
	if got := config.Server.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Expected Server.Addr() to be '127.0.0.1:9000', got '%s'", got)
	}
}

// TestLoadAndSaveConfig tests the ability to save and load configuration
// to and from files in both YAML and JSON formats.
//
// TestLoadAndSaveConfig 测试将配置保存到文件和从文件加载配置的能力，
// 包括YAML和JSON两种格式。
func TestLoadAndSaveConfig(t *testing.T) {
	// Create a temporary directory for test files
	// 创建测试文件的临时目录
	tempDir, err := os.MkdirTemp("", "cacheview-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	// Test YAML
	// 测试YAML
	yamlPath := filepath.Join(tempDir, "config.yaml")
	config := DefaultConfig()
	config.Redis.Port = 63791
	config.Redis.DB = 10
	config.Scan.PageSize = 1000

	// Save config
	// 保存配置
	if err := config.SaveToFile(yamlPath); err != nil {
		t.Fatalf("Failed to save YAML config: %v", err)
	}

	// Load config
	// 加载配置
	loadedConfig, err := LoadFromFile(yamlPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	// Verify loaded config
	// 验证加载的配置
	if loadedConfig.Redis.Port != 63791 {
		t.Errorf("Expected Redis.Port to be 63791, got %d", loadedConfig.Redis.Port)
	}
	if loadedConfig.Redis.DB != 10 {
		t.Errorf("Expected Redis.DB to be 10, got %d", loadedConfig.Redis.DB)
	}
	if loadedConfig.Scan.PageSize != 1000 {
		t.Errorf("Expected Scan.PageSize to be 1000, got %d", loadedConfig.Scan.PageSize)
	}

	// Test JSON
	// 测试JSON
	jsonPath := filepath.Join(tempDir, "config.json")
	config.Redis.Port = 6380
	config.Server.Mode = "debug"

	// Save config
	// 保存配置
	if err := config.SaveToFile(jsonPath); err != nil {
		t.Fatalf("Failed to save JSON config: %v", err)
	}

	// Load config
	// 加载配置
	loadedConfig, err = LoadFromFile(jsonPath)
	if err != nil {
		t.Fatalf("Failed to load JSON config: %v", err)
	}

	// Verify loaded config
	// 验证加载的配置
	if loadedConfig.Redis.Port != 6380 {
		t.Errorf("Expected Redis.Port to be 6380, got %d", loadedConfig.Redis.Port)
	}
	if loadedConfig.Server.Mode != "debug" {
		t.Errorf("Expected Server.Mode to be 'debug', got '%s'", loadedConfig.Server.Mode)
	}

	// Unsupported extension
	// 不支持的扩展名
	if err := config.SaveToFile(filepath.Join(tempDir, "config.toml")); err == nil {
		t.Error("Expected error when saving unsupported file format, but got nil")
	}
}

// TestValidate tests the Validate method to ensure it correctly identifies
// valid and invalid configurations according to the defined constraints.
//
// TestValidate 测试Validate方法，确保它能根据定义的约束
// 正确识别有效和无效的配置。
func TestValidate(t *testing.T) {
	tests := []struct {
		name        string        // Test case name / 测试用例名称
		modifyFunc  func(*Config) // Function to modify config / 修改配置的函数
		expectError bool          // Whether validation should fail / 验证是否应该失败
	}{
		{
			name:        "Valid default config",
			modifyFunc:  func(c *Config) {},
			expectError: false,
		},
		{
			name: "Empty redis.host",
			modifyFunc: func(c *Config) {
				c.Redis.Host = ""
			},
			expectError: true,
		},
		{
			name: "Invalid redis.port too low",
			modifyFunc: func(c *Config) {
				c.Redis.Port = 0
			},
			expectError: true,
		},
		{
			name: "Invalid redis.port too high",
			modifyFunc: func(c *Config) {
				c.Redis.Port = 70000
			},
			expectError: true,
		},
		{
			name: "Negative redis.db",
			modifyFunc: func(c *Config) {
				c.Redis.DB = -1
			},
			expectError: true,
		},
		{
			name: "Negative redis.dial_timeout",
			modifyFunc: func(c *Config) {
				c.Redis.DialTimeout = -time.Second
			},
			expectError: true,
		},
		{
			name: "Invalid server.port",
			modifyFunc: func(c *Config) {
				c.Server.Port = -1
			},
			expectError: true,
		},
		{
			name: "Invalid server.mode",
			modifyFunc: func(c *Config) {
				c.Server.Mode = "production"
			},
			expectError: true,
		},
		{
			name: "Invalid scan.page_size",
			modifyFunc: func(c *Config) {
				c.Scan.PageSize = 0
			},
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := DefaultConfig()
			test.modifyFunc(config)
			err := config.Validate()
			if test.expectError && err == nil {
				t.Error("Expected validation error, but got nil")
			}
			if !test.expectError && err != nil {
				t.Errorf("Expected no validation error, but got: %v", err)
			}
		})
	}
}
