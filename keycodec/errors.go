package keycodec

import "fmt"

// KeyEncodingError reports a key that cannot be canonicalized, typically
// because a fragment contains a cyclic structure or an unserializable type
// such as a function or channel.
type KeyEncodingError struct {
	Key Key
	Err error
}

// Error implements the error interface.
func (e *KeyEncodingError) Error() string {
	return fmt.Sprintf("keycodec: key is not serializable: %v", e.Err)
}

// Unwrap exposes the underlying serialization error.
func (e *KeyEncodingError) Unwrap() error {
	return e.Err
}
