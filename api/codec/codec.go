// Package codec defines the closed codec sets used by the cache viewer
// and the key naming convention that selects between them.
//
// Cache producers embed codec hints in the key text itself: the first
// two characters of the key select a compression algorithm, and the
// first two characters after the first "." select a serialization
// format. Classify recovers both hints without touching the value.
package codec

// CompressionAlgorithm identifies one of the compression algorithms a
// producer may have applied to a cache value before storing it.
// The set is closed; decode dispatch is a switch over these values.
type CompressionAlgorithm uint8

const (
	// CompressionNone means the value bytes are stored as-is.
	CompressionNone CompressionAlgorithm = iota

	// CompressionGzip means the value is a gzip stream. This is the
	// default when a key carries no recognizable compression prefix.
	CompressionGzip

	// CompressionSnappy means the value is a snappy block.
	CompressionSnappy

	// CompressionLZ4 means the value is an LZ4 block preceded by a
	// 4-byte little-endian uncompressed size.
	CompressionLZ4
)

// String returns the conventional short name of the algorithm.
func (a CompressionAlgorithm) String() string {
	switch a {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "zip"
	case CompressionSnappy:
		return "snappy"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// SerializationFormat identifies one of the serialization formats a
// producer may have used for a cache value. The set is closed.
type SerializationFormat uint8

const (
	// FormatNativeBinary is the versioned tagged binary format used by
	// legacy producers. This is the default when a key carries no
	// recognizable serialization prefix.
	FormatNativeBinary SerializationFormat = iota

	// FormatMsgPack is MessagePack.
	FormatMsgPack

	// FormatJSON is plain JSON text.
	FormatJSON

	// FormatGoJSON is JSON text produced by a different producer
	// library. Identical to FormatJSON on decode; the distinction is
	// kept only to preserve provenance when displaying keys.
	FormatGoJSON
)

// String returns the conventional short name of the format.
func (f SerializationFormat) String() string {
	switch f {
	case FormatNativeBinary:
		return "binary"
	case FormatMsgPack:
		return "msgpack"
	case FormatJSON:
		return "json"
	case FormatGoJSON:
		return "gojson"
	default:
		return "unknown"
	}
}

// GenericValue is a decoded cache value: a dynamically typed tree of
// mappings, sequences and scalars. The top level is always a mapping;
// non-mapping results are wrapped as {"value": v} during decode.
type GenericValue = map[string]any

// Classify derives the compression algorithm and serialization format
// for a cache key from the key text alone.
//
// The first two characters of the key (when the key is longer than two
// characters) select the compression algorithm: "c0" none, "c1" gzip,
// "c2" snappy, "c3" lz4. If the key contains a "." separator, the
// first two characters of the segment after it (when that segment is
// longer than one character) select the serialization format: "s2"
// msgpack, "s3" json, "s4" gojson.
//
// Classify is pure and total. Keys with no recognizable prefix, short
// keys and the empty key all degrade to the defaults (gzip, native
// binary) rather than failing.
//
// Parameters:
//   - key: The cache key to classify
//
// Returns:
//   - CompressionAlgorithm: The algorithm to decompress the value with
//   - SerializationFormat: The format to deserialize the value with
func Classify(key string) (CompressionAlgorithm, SerializationFormat) {
	return classifyCompression(key), classifySerialization(key)
}

func classifyCompression(key string) CompressionAlgorithm {
	if len(key) > 2 {
		switch key[:2] {
		case "c0":
			return CompressionNone
		case "c1":
			return CompressionGzip
		case "c2":
			return CompressionSnappy
		case "c3":
			return CompressionLZ4
		}
	}
	return CompressionGzip
}

func classifySerialization(key string) SerializationFormat {
	if len(key) > 4 {
		for i := 0; i < len(key); i++ {
			if key[i] != '.' {
				continue
			}
			rest := key[i+1:]
			if len(rest) > 1 {
				switch rest[:2] {
				case "s2":
					return FormatMsgPack
				case "s3":
					return FormatJSON
				case "s4":
					return FormatGoJSON
				}
			}
			break
		}
	}
	return FormatNativeBinary
}

// Decompressor reverses one compression algorithm.
// Implementations are stateless and safe for concurrent use.
type Decompressor interface {
	// Decompress reverses the compression applied to data.
	// The input slice is never modified.
	//
	// Parameters:
	//   - data: The compressed bytes
	//
	// Returns:
	//   - []byte: The decompressed bytes
	//   - error: An error if the input is malformed for this algorithm
	Decompress(data []byte) ([]byte, error)

	// Name returns the name of this decompressor.
	//
	// Returns:
	//   - string: The decompressor name
	Name() string
}

// Deserializer converts decompressed bytes into a GenericValue.
// Implementations are stateless and safe for concurrent use.
type Deserializer interface {
	// Deserialize decodes data into a generic value tree. The result
	// is always a mapping: a non-mapping top-level value is wrapped
	// as {"value": v}.
	//
	// Parameters:
	//   - data: The serialized bytes
	//
	// Returns:
	//   - GenericValue: The decoded mapping
	//   - error: An error if the input is malformed for this format
	Deserialize(data []byte) (GenericValue, error)

	// Name returns the name of this deserializer.
	//
	// Returns:
	//   - string: The deserializer name
	Name() string
}
