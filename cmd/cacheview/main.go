// Package main implements the cacheview server: an HTTP admin API for
// browsing a Redis cache whose values were written with key-embedded
// codec conventions. It loads configuration, verifies that the store
// is reachable, and serves the viewer API.
//
// Package main 实现cacheview服务器：一个用于浏览Redis缓存的HTTP管理
// API，缓存值使用键内嵌的编解码约定写入。
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/gin-gonic/gin"

	"github.com/Humphrey-He/cacheview/configs"
	"github.com/Humphrey-He/cacheview/internal/redisstore"
	"github.com/Humphrey-He/cacheview/internal/server"
)

// main is the entry point for the cacheview server. It loads the
// configuration, connects to Redis, and starts the HTTP server.
//
// main 是cacheview服务器的入口点。
// 它加载配置，连接Redis，并启动HTTP服务器。
func main() {
	configFile := flag.String("config", "", "Path to the configuration file (yaml or json)")
	listenAddr := flag.String("addr", "", "HTTP listen address override (host:port)")
	flag.Parse()

	// Load configuration, falling back to defaults when no file is given
	// 加载配置，未指定文件时回退到默认值
	config := configs.DefaultConfig()
	if *configFile != "" {
		vc, err := configs.LoadViperConfig(*configFile, false)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if vc.Extensions.HotReload.Enable {
			vc.EnableHotReload()
			vc.Subscribe(func(c *configs.Config) {
				// Connection and listen settings need a restart; only
				// log the change so the operator knows it was seen.
				// 连接和监听设置需要重启，这里只记录变更。
				log.Printf("Configuration reloaded; connection changes apply on restart")
			})
		}
		config = vc.Get()
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Connect to the backing store
	// 连接后端存储
	store := redisstore.New(redisstore.Options{
		Addr:        config.Redis.Addr(),
		DB:          config.Redis.DB,
		Password:    config.Redis.Password,
		PoolSize:    config.Redis.PoolSize,
		DialTimeout: config.Redis.DialTimeout,
	})
	defer store.Close()

	// Probe connectivity with backoff before serving. The viewer core
	// never retries; startup is the one place the caller does.
	// 在提供服务前以退避方式探测连通性。查看器核心从不重试；
	// 启动阶段是调用方唯一重试的地方。
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err := retry.Do(func() error {
		return store.Ping(ctx)
	},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(5*time.Second),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("Redis ping attempt %d failed: %v", n+1, err)
		}),
	)
	if err != nil {
		log.Fatalf("Redis at %s unreachable: %v", config.Redis.Addr(), err)
	}
	log.Printf("Connected to Redis at %s (db %d)", config.Redis.Addr(), config.Redis.DB)

	// Setup the HTTP server
	// 设置HTTP服务器
	gin.SetMode(config.Server.Mode)
	srv := server.New(store, config.Scan.PageSize)
	router := srv.Router()

	addr := config.Server.Addr()
	if *listenAddr != "" {
		addr = *listenAddr
	}
	log.Printf("Starting cacheview on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
