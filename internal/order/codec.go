// Package order implements the wire encoding for stored orderings.
//
// A stored ordering is a sequence of item IDs joined by a fixed delimiter.
// The delimiter never appears inside an ID (IDs are numeric tokens issued by
// the platform), so the encoding needs no escaping. Rank is positional: the
// item at index i belongs at position i.
package order

import "strings"

// Delimiter separates item IDs in an encoded ordering.
const Delimiter = ","

// Encode joins item IDs into a single stored value.
// An empty sequence encodes to the empty string.
func Encode(ids []string) string {
	return strings.Join(ids, Delimiter)
}

// Decode splits a stored value back into item IDs.
// The empty string decodes to an empty sequence, not a sequence containing
// one empty ID. No shape validation happens here; a malformed token simply
// fails to resolve later.
func Decode(encoded string) []string {
	if encoded == "" {
		return nil
	}
	return strings.Split(encoded, Delimiter)
}
