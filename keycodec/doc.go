// Package keycodec canonicalizes hierarchical query keys into comparable
// strings and implements fragment-boundary prefix matching over them.
//
// # Overview
//
// A query key is an ordered sequence of serializable fragments:
//
//	key := keycodec.Key{"users", 10, map[string]any{"active": true}}
//
// Encode produces the canonical string used as the cache map identity.
// Decode reconstructs the fragment sequence from that string. EncodePrefix
// and MatchesPrefix support invalidating every key that begins with a given
// fragment sequence.
//
// # Key Identity Is Structural
//
// Two keys address the same cache slot iff their canonical encodings are
// byte-equal. The encoding preserves structure and order; it does NOT
// normalize field order. Struct fields serialize in declaration order, so
// reordering fields changes the key. This is a deliberate departure from
// key-hashing schemes that sort object fields: keys are compared by their
// serialized form, nothing more. Go maps are the single exception, since
// encoding/json always emits their keys sorted.
//
// # Prefix Matching Operates on Fragments
//
// MatchesPrefix matches whole fragments, never substrings of one fragment:
//
//	["users"]  matches  ["users"] and ["users", 10]
//	["user"]   does not match ["userset"]
//	[1]        does not match [10]
//
// The canonical encoding delimits fragment boundaries, so matching is exact
// on the fragment sequence rather than plain string prefixing.
//
// # Error Handling
//
// Encode fails only when a fragment cannot be serialized (cycles, functions,
// channels), surfaced as a *KeyEncodingError wrapping the underlying cause.
package keycodec
