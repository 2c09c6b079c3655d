package types

import (
	"slices"
	"strconv"
)

// Kind identifies which alternative of Value is populated.
type Kind int

const (
	// KindString holds a scalar string.
	KindString Kind = iota
	// KindInt holds a scalar integer.
	KindInt
	// KindList holds an ordered sequence of strings.
	KindList
	// KindBytes holds a binary blob.
	KindBytes
)

// String returns a human-readable name for the kind, used in warnings.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindList:
		return "list"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is the tagged-union type stored under every Tag Map key: a scalar
// string, an integer, an ordered sequence of strings, or a binary blob.
//
// Value is intentionally small and immutable from the caller's point of
// view — the constructors List and Bytes store copies, and the accessors
// AsList and AsBytes return copies.
type Value struct {
	kind  Kind
	str   string
	num   int
	list  []string
	bytes []byte
}

// String constructs a scalar string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int constructs a scalar integer Value.
func Int(i int) Value {
	return Value{kind: KindInt, num: i}
}

// List constructs an ordered sequence-of-strings Value.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// Bytes constructs a binary-blob Value.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bytes: slices.Clone(b)}
}

// Kind reports which alternative is populated.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero Value (as returned by a missing key).
func (v Value) IsZero() bool {
	return v.kind == KindString && v.str == "" && v.num == 0 && v.list == nil && v.bytes == nil
}

// AsString renders v as a string regardless of its underlying kind.
//
// KindList renders as its first element (empty string if the list is
// empty); KindBytes renders as an empty string (binary data has no useful
// textual form). Callers that need the raw list or bytes should use
// AsList() or AsBytes() instead.
func (v Value) AsString() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.Itoa(v.num)
	case KindList:
		if len(v.list) == 0 {
			return ""
		}
		return v.list[0]
	case KindBytes:
		return ""
	default:
		return ""
	}
}

// AsInt renders v as an integer. Non-numeric strings and empty lists yield 0.
func (v Value) AsInt() int {
	switch v.kind {
	case KindInt:
		return v.num
	case KindString:
		n, _ := strconv.Atoi(v.str)
		return n
	case KindList:
		if len(v.list) == 0 {
			return 0
		}
		n, _ := strconv.Atoi(v.list[0])
		return n
	default:
		return 0
	}
}

// AsList renders v as an ordered sequence of strings.
//
// A scalar string or int becomes a single-element list; bytes become nil.
func (v Value) AsList() []string {
	switch v.kind {
	case KindList:
		return slices.Clone(v.list)
	case KindString:
		if v.str == "" {
			return nil
		}
		return []string{v.str}
	case KindInt:
		return []string{strconv.Itoa(v.num)}
	default:
		return nil
	}
}

// AsBytes renders v as a binary blob. Non-bytes kinds yield nil.
func (v Value) AsBytes() []byte {
	if v.kind != KindBytes {
		return nil
	}
	return slices.Clone(v.bytes)
}

// Len reports the byte length of v when interpreted as artwork/binary data:
// for KindBytes, len(bytes); for KindInt, the value itself (used when the
// container reports artwork length without bytes, see COVER_LENGTH).
func (v Value) Len() int {
	switch v.kind {
	case KindBytes:
		return len(v.bytes)
	case KindInt:
		return v.num
	default:
		return len(v.AsString())
	}
}

// Equal reports whether v and other hold the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.num == other.num
	case KindList:
		return slices.Equal(v.list, other.list)
	case KindBytes:
		return slices.Equal(v.bytes, other.bytes)
	default:
		return false
	}
}
