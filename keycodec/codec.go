package keycodec

import (
	"encoding/json"
	"strings"
)

// Key is an ordered sequence of serializable fragments identifying one query.
// Fragments may be strings, numbers, booleans, nil, or nested plain structures.
type Key []any

// Encode canonicalizes a key into its comparable string form: the JSON
// encoding of the fragment sequence. Two keys address the same cache slot
// iff their encodings are byte-equal.
//
// The encoding is structural and order-preserving. Struct fields serialize in
// declaration order, so the same fields declared in a different order produce
// a DIFFERENT key. This is deliberate: keys are compared by their serialized
// form, not by semantic equality of unordered fields. The one exception is Go
// maps, which encoding/json marshals with sorted keys.
func Encode(key Key) (string, error) {
	if key == nil {
		key = Key{}
	}
	data, err := json.Marshal([]any(key))
	if err != nil {
		return "", &KeyEncodingError{Key: key, Err: err}
	}
	return string(data), nil
}

// Decode reconstructs a key from its canonical form. The result round-trips
// structurally but never by identity: fragments are fresh values, numbers come
// back as float64 and objects as map[string]any, per encoding/json.
func Decode(canonical string) (Key, error) {
	var fragments []any
	if err := json.Unmarshal([]byte(canonical), &fragments); err != nil {
		return nil, &KeyEncodingError{Err: err}
	}
	return Key(fragments), nil
}

// EncodePrefix canonicalizes a key prefix for fragment-sequence matching: the
// canonical encoding with its closing delimiter stripped. An empty prefix
// encodes to the empty string, which matches every key.
func EncodePrefix(prefix Key) (string, error) {
	if len(prefix) == 0 {
		return "", nil
	}
	canonical, err := Encode(prefix)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(canonical, "]"), nil
}

// MatchesPrefix reports whether a canonical key begins with the given encoded
// prefix, on whole fragment boundaries. A key matches when it is exactly the
// prefix sequence or extends it with further fragments; a fragment never
// matches a substring of another fragment, so the prefix ["user"] does not
// match the key ["userset"] and [1] does not match [10].
func MatchesPrefix(canonical, encodedPrefix string) bool {
	if encodedPrefix == "" {
		return true
	}
	if canonical == encodedPrefix+"]" {
		return true
	}
	return strings.HasPrefix(canonical, encodedPrefix+",")
}
