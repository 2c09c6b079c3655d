// Package vorbis provides shared Vorbis comment parsing utilities.
//
// Vorbis comments are used by both FLAC and Ogg Vorbis formats. The format
// is identical: UTF-8 strings in "KEY=VALUE" format. Canonical field
// mapping and coercion happen later, in the Tag Mapper; this package's
// job is only to turn the flat comment list into a Tag Map with
// upper-cased keys, folding repeated keys into a list.
package vorbis

import (
	"fmt"
	"strings"

	"github.com/wavepath/flacscan/internal/types"
)

// ParseComment parses a single Vorbis comment in "KEY=VALUE" format and
// merges it into tm. A key seen more than once becomes a KindList holding
// every value in encounter order.
func ParseComment(comment string, tm types.TagMap) error {
	eq := strings.IndexByte(comment, '=')
	if eq == -1 {
		return fmt.Errorf("missing '=' in comment: %s", comment)
	}

	key := strings.ToUpper(comment[:eq])
	value := comment[eq+1:]

	existing, ok := tm.Get(key)
	switch {
	case !ok:
		tm.SetString(key, value)
	case existing.Kind() == types.KindList:
		tm.Set(key, types.List(append(existing.AsList(), value)...))
	default:
		tm.Set(key, types.List(existing.AsString(), value))
	}

	return nil
}
