// Package compress provides the decompressor implementations for the
// closed set of compression algorithms used by cache producers.
//
// Package compress 提供缓存生产者使用的压缩算法集合的解压实现。
//
// All decompressors are stateless and safe for concurrent use. Decode
// dispatch is a switch over the algorithm enum, never reflection, so
// the codec set stays a compile-time-checkable closed set.
//
// 所有解压器都是无状态的，可安全并发使用。解码分发是对算法枚举的
// switch，而非反射，因此编解码器集合在编译期即为封闭集合。
package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/Humphrey-He/cacheview/api/codec"
)

// maxLZ4BlockSize bounds the uncompressed size an LZ4 frame may
// declare. A corrupt or hostile header must not make the viewer
// allocate arbitrary memory.
//
// maxLZ4BlockSize 限制LZ4帧可声明的解压后大小，防止损坏或恶意的
// 头部导致任意大小的内存分配。
const maxLZ4BlockSize = 512 << 20 // 512 MiB

// Singleton decompressors. All are stateless.
// 单例解压器，均为无状态。
var (
	noneCodec   = none{}
	gzipCodec   = gzipAlg{}
	snappyCodec = snappyAlg{}
	lz4Codec    = lz4Alg{}
)

// ForAlgorithm returns the decompressor for the given algorithm.
// Unknown values fall back to the identity decompressor; Classify can
// only produce members of the closed set, so this path is defensive
// against future enum growth only.
//
// ForAlgorithm 返回给定算法对应的解压器。
//
// Parameters:
//   - a: The compression algorithm
//
// Returns:
//   - codec.Decompressor: The decompressor for the algorithm
func ForAlgorithm(a codec.CompressionAlgorithm) codec.Decompressor {
	switch a {
	case codec.CompressionGzip:
		return gzipCodec
	case codec.CompressionSnappy:
		return snappyCodec
	case codec.CompressionLZ4:
		return lz4Codec
	default:
		return noneCodec
	}
}

// none is the identity transform. It cannot fail.
// none 是恒等变换，不会失败。
type none struct{}

// Decompress returns data unchanged.
func (none) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// Name returns the decompressor name.
func (none) Name() string {
	return "none"
}

// gzipAlg decompresses gzip-framed streams.
// gzipAlg 解压gzip格式的数据流。
type gzipAlg struct{}

// Decompress inflates a gzip stream. Malformed headers, corrupt
// deflate data and checksum mismatches all surface as errors.
func (gzipAlg) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip stream: %w", err)
	}
	return out, nil
}

// Name returns the decompressor name.
func (gzipAlg) Name() string {
	return "zip"
}

// snappyAlg decompresses snappy block-format data.
// snappyAlg 解压snappy块格式数据。
type snappyAlg struct{}

// Decompress decodes one snappy block.
func (snappyAlg) Decompress(data []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy block: %w", err)
	}
	return out, nil
}

// Name returns the decompressor name.
func (snappyAlg) Name() string {
	return "snappy"
}

// lz4Alg decompresses LZ4 block frames as written by cache producers:
// a 4-byte little-endian uncompressed size followed by one raw LZ4
// block.
//
// lz4Alg 解压缓存生产者写入的LZ4块帧：4字节小端序的解压后大小，
// 后跟一个原始LZ4块。
type lz4Alg struct{}

// Decompress decodes one size-prefixed LZ4 block. The declared size
// must match the decoded size exactly.
func (lz4Alg) Decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("lz4 frame: truncated size header (%d bytes)", len(data))
	}
	size := binary.LittleEndian.Uint32(data[:4])
	block := data[4:]

	if size == 0 {
		if len(block) != 0 {
			return nil, fmt.Errorf("lz4 frame: declared empty but %d block bytes present", len(block))
		}
		return []byte{}, nil
	}
	if size > maxLZ4BlockSize {
		return nil, fmt.Errorf("lz4 frame: declared size %d exceeds limit", size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 block: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4 block: got %d bytes, declared %d", n, size)
	}
	return out, nil
}

// Name returns the decompressor name.
func (lz4Alg) Name() string {
	return "lz4"
}
