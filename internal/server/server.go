// Package server provides the HTTP admin API for the cache viewer.
// It is the presentation layer over the decode pipeline and the key
// scanner: handlers translate HTTP requests into core calls and map
// classified errors onto status codes.
//
// Package server 提供缓存查看器的HTTP管理API。
// 它是解码流水线和键扫描器之上的表示层。
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Humphrey-He/cacheview/api/codec"
	"github.com/Humphrey-He/cacheview/api/core"
	"github.com/Humphrey-He/cacheview/internal/decoder"
	"github.com/Humphrey-He/cacheview/internal/scanner"
)

// Server wires the viewer components behind a gin router. Each inbound
// request runs on its own goroutine with no shared mutable state; the
// only shared resource is the store's connection pool.
type Server struct {
	store   core.Store
	decoder *decoder.Decoder
	scanner *scanner.Scanner
}

// New creates a Server over the given store and scan page size.
//
// Parameters:
//   - store: The store gateway
//   - scanPageSize: Hint for keys examined per scan call
//
// Returns:
//   - *Server: A new server
func New(store core.Store, scanPageSize int64) *Server {
	return &Server{
		store:   store,
		decoder: decoder.New(),
		scanner: scanner.New(store, scanPageSize),
	}
}

// Router builds the gin engine with all routes and middleware
// registered.
//
// Returns:
//   - *gin.Engine: The configured router
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger())

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/api/v1")
	v1.GET("/keys", s.handleListKeys)
	v1.GET("/value", s.handleGetValue)
	v1.GET("/ttl", s.handleGetTTL)
	v1.GET("/size", s.handleGetSize)
	v1.GET("/classify", s.handleClassify)
	v1.DELETE("/key", s.handleDeleteKey)
	v1.GET("/status", s.handleStatus)

	return router
}

// keyEntry is one row of the key listing: the key plus the codec
// labels inferred from its text, so the UI can display them without
// decoding any value.
type keyEntry struct {
	Key           string `json:"key"`
	Compression   string `json:"compression"`
	Serialization string `json:"serialization"`
}

// handleListKeys lists keys matching the store-side glob pattern, with
// an optional case-insensitive substring post-filter.
func (s *Server) handleListKeys(c *gin.Context) {
	pattern := c.DefaultQuery("pattern", "*")
	keys, err := s.scanner.Keys(c.Request.Context(), pattern)
	if err != nil {
		abortWithError(c, err)
		return
	}
	keys = scanner.Filter(keys, c.Query("filter"))

	entries := make([]keyEntry, 0, len(keys))
	for _, key := range keys {
		alg, format := codec.Classify(key)
		entries = append(entries, keyEntry{
			Key:           key,
			Compression:   alg.String(),
			Serialization: format.String(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"keys": entries, "count": len(entries)})
}

// handleGetValue fetches one value and runs it through the decode
// pipeline. Every request re-fetches and re-decodes; nothing is cached
// between requests.
func (s *Server) handleGetValue(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}

	raw, err := s.store.Get(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}

	alg, format := codec.Classify(key)
	value, err := s.decoder.Decode(key, raw)
	if err != nil {
		abortWithError(c, err)
		return
	}

	ttl := ""
	if d, err := s.store.TTL(c.Request.Context(), key); err == nil {
		ttl = FormatTTL(d)
	}

	c.JSON(http.StatusOK, gin.H{
		"key":           key,
		"compression":   alg.String(),
		"serialization": format.String(),
		"size":          len(raw),
		"ttl":           ttl,
		"value":         value,
	})
}

// handleGetTTL reports the remaining TTL of a key, both in seconds and
// as the human label the original viewer displayed.
func (s *Server) handleGetTTL(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}
	d, err := s.store.TTL(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}

	seconds := int64(-1)
	if d != core.NoTTL {
		seconds = int64(d.Seconds())
	}
	c.JSON(http.StatusOK, gin.H{
		"key":         key,
		"ttl_seconds": seconds,
		"ttl":         FormatTTL(d),
	})
}

// handleGetSize reports the raw stored size of a key's value in bytes.
func (s *Server) handleGetSize(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}
	n, err := s.store.ValueSize(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "size": n})
}

// handleClassify reports the codec labels inferred from a key's text.
// Classification is pure; the key need not exist in the store.
func (s *Server) handleClassify(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}
	alg, format := codec.Classify(key)
	c.JSON(http.StatusOK, keyEntry{
		Key:           key,
		Compression:   alg.String(),
		Serialization: format.String(),
	})
}

// handleDeleteKey removes one key from the store.
func (s *Server) handleDeleteKey(c *gin.Context) {
	key, ok := requireKey(c)
	if !ok {
		return
	}
	deleted, err := s.store.Delete(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "key not found", "deleted": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// handleStatus reports store reachability and keyspace statistics.
func (s *Server) handleStatus(c *gin.Context) {
	status, err := s.store.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"connected": false,
			"error":     err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, status)
}

// handleHealth answers liveness probes with a store ping.
func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "unreachable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireKey extracts the mandatory key query parameter. Keys travel
// as query parameters, never path segments, so arbitrary store keys
// (slashes, dots, colons) need no route escaping.
func requireKey(c *gin.Context) (string, bool) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing key parameter"})
		return "", false
	}
	return key, true
}

// abortWithError maps a classified error onto an HTTP status and a
// JSON body naming the failing stage.
func abortWithError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	if stage := core.Stage(err); stage != "" {
		body["stage"] = stage
	}

	switch {
	case core.IsNotFound(err):
		c.JSON(http.StatusNotFound, body)
	case core.IsDecompressError(err), core.IsDeserializeError(err):
		c.JSON(http.StatusUnprocessableEntity, body)
	case core.IsScanError(err), core.IsUnreachable(err):
		c.JSON(http.StatusBadGateway, body)
	default:
		c.JSON(http.StatusInternalServerError, body)
	}
}
