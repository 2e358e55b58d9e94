package serialize

import (
	"encoding/binary"
	"math"
	"reflect"
	"testing"

	"github.com/Humphrey-He/cacheview/api/codec"
)

// binaryWriter builds version-1 native binary fixtures. Encoding is
// out of scope for the viewer, so the writer lives in the test.
type binaryWriter struct {
	buf []byte
}

func newBinaryWriter() *binaryWriter {
	return &binaryWriter{buf: []byte{binaryMagic0, binaryMagic1, binaryVersion}}
}

func (w *binaryWriter) bytes() []byte { return w.buf }

func (w *binaryWriter) u32(n uint32) *binaryWriter {
	w.buf = binary.BigEndian.AppendUint32(w.buf, n)
	return w
}

func (w *binaryWriter) u64(n uint64) *binaryWriter {
	w.buf = binary.BigEndian.AppendUint64(w.buf, n)
	return w
}

func (w *binaryWriter) raw(b ...byte) *binaryWriter {
	w.buf = append(w.buf, b...)
	return w
}

func (w *binaryWriter) str(s string) *binaryWriter {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
	return w
}

func (w *binaryWriter) value(v any) *binaryWriter {
	switch x := v.(type) {
	case nil:
		w.raw(tagNull)
	case bool:
		if x {
			w.raw(tagTrue)
		} else {
			w.raw(tagFalse)
		}
	case int64:
		w.raw(tagInt64).u64(uint64(x))
	case float64:
		w.raw(tagFloat64).u64(math.Float64bits(x))
	case string:
		w.raw(tagString).str(x)
	case []byte:
		w.raw(tagBytes).u32(uint32(len(x))).raw(x...)
	case []any:
		w.raw(tagArray).u32(uint32(len(x)))
		for _, e := range x {
			w.value(e)
		}
	case map[string]any:
		// Deterministic order is unnecessary for decode tests with
		// single-entry maps; multi-entry fixtures are built by hand.
		w.raw(tagMap).u32(uint32(len(x)))
		for k, e := range x {
			w.str(k)
			w.value(e)
		}
	default:
		panic("unsupported fixture type")
	}
	return w
}

// TestBinaryRoundTrip verifies the decoder recovers every tag type the
// version-1 schema defines.
func TestBinaryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"null", nil, nil},
		{"true", true, true},
		{"false", false, false},
		{"int", int64(-42), int64(-42)},
		{"float", 3.5, 3.5},
		{"string", "héllo", "héllo"},
		{"bytes", []byte{0x00, 0xff}, []byte{0x00, 0xff}},
		{"array", []any{int64(1), "two"}, []any{int64(1), "two"}},
		{
			"map",
			map[string]any{"k": "v"},
			map[string]any{"k": "v"},
		},
		{
			"nested",
			map[string]any{"list": []any{map[string]any{"deep": true}}},
			map[string]any{"list": []any{map[string]any{"deep": true}}},
		},
	}

	dec := nativeBinary{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := newBinaryWriter().value(tt.in).bytes()
			got, err := dec.Deserialize(data)
			if err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}

			// Non-map top levels arrive wrapped.
			want := codec.GenericValue{"value": tt.want}
			if m, ok := tt.want.(map[string]any); ok {
				want = m
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Deserialize = %#v, want %#v", got, want)
			}
		})
	}
}

// TestBinaryUnion verifies tagged unions decode to the JSON-shaped
// {"_union": tag, "value": v} mapping, and that a top-level union is
// wrapped like any non-mapping value.
func TestBinaryUnion(t *testing.T) {
	w := newBinaryWriter()
	w.raw(tagUnion).str("UserRef").value(int64(7))

	got, err := nativeBinary{}.Deserialize(w.bytes())
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	want := codec.GenericValue{"value": map[string]any{"_union": "UserRef", "value": int64(7)}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deserialize = %#v, want %#v", got, want)
	}
}

// TestBinaryUnionInMap verifies a union nested inside a map keeps its
// bare representation: only the top level wraps.
func TestBinaryUnionInMap(t *testing.T) {
	w := newBinaryWriter()
	w.raw(tagMap).u32(1).str("ref")
	w.raw(tagUnion).str("UserRef").value(int64(7))

	got, err := nativeBinary{}.Deserialize(w.bytes())
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	want := codec.GenericValue{
		"ref": map[string]any{"_union": "UserRef", "value": int64(7)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deserialize = %#v, want %#v", got, want)
	}
}

// TestBinaryMapWithUnionKey verifies a stored map that happens to carry
// a "_union" entry is returned as-is, distinguishable from a top-level
// union by the absence of the wrapper.
func TestBinaryMapWithUnionKey(t *testing.T) {
	data := newBinaryWriter().value(map[string]any{"_union": "fake"}).bytes()

	got, err := nativeBinary{}.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	want := codec.GenericValue{"_union": "fake"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Deserialize = %#v, want %#v", got, want)
	}
}

// TestBinaryMalformed verifies every framing violation is rejected:
// wrong magic, unknown version, unknown tags, truncation, trailing
// garbage and hostile counts.
func TestBinaryMalformed(t *testing.T) {
	valid := newBinaryWriter().value("x").bytes()

	truncated := make([]byte, len(valid)-1)
	copy(truncated, valid)

	trailing := append(append([]byte{}, valid...), 0x00)

	badMagic := append([]byte{}, valid...)
	badMagic[0] = 'X'

	badVersion := append([]byte{}, valid...)
	badVersion[2] = 0x02

	unknownTag := []byte{binaryMagic0, binaryMagic1, binaryVersion, 0x7f}

	hugeCount := newBinaryWriter().raw(tagArray).u32(0xffffffff).bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{binaryMagic0}},
		{"bad magic", badMagic},
		{"bad version", badVersion},
		{"unknown tag", unknownTag},
		{"truncated string", truncated},
		{"trailing garbage", trailing},
		{"hostile count", hugeCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (nativeBinary{}).Deserialize(tt.data); err == nil {
				t.Errorf("Deserialize accepted %s", tt.name)
			}
		})
	}
}

// TestBinaryDepthLimit verifies deep nesting fails instead of
// exhausting the stack.
func TestBinaryDepthLimit(t *testing.T) {
	w := newBinaryWriter()
	for i := 0; i < maxBinaryDepth+2; i++ {
		w.raw(tagArray).u32(1)
	}
	w.raw(tagNull)

	if _, err := (nativeBinary{}).Deserialize(w.bytes()); err == nil {
		t.Error("Deserialize accepted nesting beyond the depth limit")
	}
}
