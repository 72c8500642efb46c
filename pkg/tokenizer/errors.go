package tokenizer

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned by Tokenize and Wakati when the input is not
// valid UTF-8. No partial tokenization is attempted.
var ErrInvalidEncoding = errors.New("tokenizer: input is not valid UTF-8")

// LoadError reports a malformed or version-mismatched compiled dictionary.
// It is fatal at load time; nothing attempts recovery from it internally.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tokenizer: load dictionary %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("tokenizer: load dictionary %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
