// Native binary format (version 1).
//
// Legacy producers stored values in a host-language object encoding
// that does not survive a port. The viewer decodes its replacement: an
// explicit, versioned, type-tagged tree encoding covering the closed
// set of shapes those producers actually wrote. Any payload outside
// the schema is a deserialization error, never a guess.
//
// 原生二进制格式（版本1）。旧生产者使用无法跨语言移植的宿主对象
// 编码；此处解码其替代格式：显式、带版本号、按类型打标签的树形
// 编码。任何超出模式的负载都是反序列化错误，绝不猜测。
//
// Layout:
//
//	'N' 'B' <version=0x01> <value>
//
// where <value> is one tag byte followed by its payload:
//
//	0x00 null
//	0x01 false
//	0x02 true
//	0x03 int64   (8 bytes, big-endian two's complement)
//	0x04 float64 (8 bytes, big-endian IEEE 754)
//	0x05 string  (uint32 big-endian length, UTF-8 bytes)
//	0x06 bytes   (uint32 big-endian length, raw bytes)
//	0x07 array   (uint32 big-endian count, then count values)
//	0x08 map     (uint32 big-endian count, then count string/value pairs;
//	              keys use the string layout without a tag byte)
//	0x09 union   (string layout tag name without a tag byte, one value)
//
// A union decodes to the mapping {"_union": tag, "value": v}. At the
// top level that representation counts as a non-mapping value and is
// wrapped like any scalar, so {"value": {"_union": ...}} always means
// the stored value was a union, never a map containing "_union".
package serialize

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Humphrey-He/cacheview/api/codec"
)

const (
	binaryMagic0  = 'N'
	binaryMagic1  = 'B'
	binaryVersion = 0x01
)

// Value tags of the version-1 schema. The set is closed: an unknown
// tag is a decode error.
const (
	tagNull    = 0x00
	tagFalse   = 0x01
	tagTrue    = 0x02
	tagInt64   = 0x03
	tagFloat64 = 0x04
	tagString  = 0x05
	tagBytes   = 0x06
	tagArray   = 0x07
	tagMap     = 0x08
	tagUnion   = 0x09
)

// maxBinaryDepth bounds nesting so a malicious payload cannot blow the
// stack with deeply nested arrays.
const maxBinaryDepth = 128

// nativeBinary deserializes the version-1 native binary format.
type nativeBinary struct{}

// Deserialize decodes one framed value. Unknown magic, unknown
// versions, unknown tags, truncation and trailing garbage are all
// errors.
func (nativeBinary) Deserialize(data []byte) (codec.GenericValue, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("native binary: truncated header (%d bytes)", len(data))
	}
	if data[0] != binaryMagic0 || data[1] != binaryMagic1 {
		return nil, fmt.Errorf("native binary: bad magic %#02x %#02x", data[0], data[1])
	}
	if data[2] != binaryVersion {
		return nil, fmt.Errorf("native binary: unsupported version %d", data[2])
	}

	r := &binaryReader{buf: data, off: 3}
	rootIsUnion := len(data) > 3 && data[3] == tagUnion
	v, err := r.readValue(0)
	if err != nil {
		return nil, err
	}
	if r.off != len(r.buf) {
		return nil, fmt.Errorf("native binary: %d trailing bytes after value", len(r.buf)-r.off)
	}
	// A top-level union is a value, not a mapping: wrap it so callers
	// can tell it apart from a stored map that contains "_union".
	if rootIsUnion {
		return codec.GenericValue{"value": v}, nil
	}
	return normalize(v), nil
}

// Name returns the deserializer name.
func (nativeBinary) Name() string {
	return "binary"
}

// binaryReader walks a native binary payload. It is not reused across
// calls; each Deserialize builds its own.
type binaryReader struct {
	buf []byte
	off int
}

func (r *binaryReader) readValue(depth int) (any, error) {
	if depth > maxBinaryDepth {
		return nil, fmt.Errorf("native binary: nesting exceeds %d levels", maxBinaryDepth)
	}

	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagNull:
		return nil, nil
	case tagFalse:
		return false, nil
	case tagTrue:
		return true, nil

	case tagInt64:
		u, err := r.readUint64()
		if err != nil {
			return nil, err
		}
		return int64(u), nil

	case tagFloat64:
		u, err := r.readUint64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(u), nil

	case tagString:
		return r.readString()

	case tagBytes:
		b, err := r.readLengthPrefixed()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil

	case tagArray:
		count, err := r.readCount()
		if err != nil {
			return nil, err
		}
		arr := make([]any, 0, count)
		for i := 0; i < count; i++ {
			v, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil

	case tagMap:
		count, err := r.readCount()
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, count)
		for i := 0; i < count; i++ {
			key, err := r.readString()
			if err != nil {
				return nil, err
			}
			v, err := r.readValue(depth + 1)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		return m, nil

	case tagUnion:
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		v, err := r.readValue(depth + 1)
		if err != nil {
			return nil, err
		}
		// Unions stay JSON-shaped in the generic tree.
		return map[string]any{"_union": name, "value": v}, nil

	default:
		return nil, fmt.Errorf("native binary: unknown value tag %#02x at offset %d", tag, r.off-1)
	}
}

func (r *binaryReader) readByte() (byte, error) {
	if r.off >= len(r.buf) {
		return 0, fmt.Errorf("native binary: truncated at offset %d", r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *binaryReader) readUint32() (uint32, error) {
	if len(r.buf)-r.off < 4 {
		return 0, fmt.Errorf("native binary: truncated at offset %d", r.off)
	}
	u := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return u, nil
}

func (r *binaryReader) readUint64() (uint64, error) {
	if len(r.buf)-r.off < 8 {
		return 0, fmt.Errorf("native binary: truncated at offset %d", r.off)
	}
	u := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return u, nil
}

// readCount reads a collection count and checks it against the bytes
// remaining, so corrupt counts fail instead of forcing huge
// allocations. Every element needs at least one byte.
func (r *binaryReader) readCount() (int, error) {
	u, err := r.readUint32()
	if err != nil {
		return 0, err
	}
	if int64(u) > int64(len(r.buf)-r.off) {
		return 0, fmt.Errorf("native binary: count %d exceeds %d remaining bytes", u, len(r.buf)-r.off)
	}
	return int(u), nil
}

func (r *binaryReader) readLengthPrefixed() ([]byte, error) {
	n, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(len(r.buf)-r.off) {
		return nil, fmt.Errorf("native binary: length %d exceeds %d remaining bytes", n, len(r.buf)-r.off)
	}
	b := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return b, nil
}

func (r *binaryReader) readString() (string, error) {
	b, err := r.readLengthPrefixed()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
