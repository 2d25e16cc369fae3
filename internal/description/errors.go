package description

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	decodeFailedCode  = "DESCRIPTION_DECODE_FAILED"
	parsePanickedCode = "DESCRIPTION_PARSE_PANIC"
)

var (
	// ErrDecodeFailure reports a payload that looked encoded but did not decode
	// into UTF-8 text. Callers fall back to the raw payload.
	ErrDecodeFailure = errors.New("description: payload decode failed")
	// ErrInternalParse reports an unexpected failure while assembling a document.
	ErrInternalParse = errors.New("description: internal parse error")
)

func wrapDecodeError(cause error) error {
	if cause == nil {
		return nil
	}
	return goerrors.Wrap(fmt.Errorf("%w: %v", ErrDecodeFailure, cause), goerrors.CategoryValidation, "description payload is not decodable").
		WithTextCode(decodeFailedCode)
}

func wrapRecovered(recovered any) error {
	var cause error
	switch value := recovered.(type) {
	case error:
		cause = fmt.Errorf("%w: %w", ErrInternalParse, value)
	default:
		cause = fmt.Errorf("%w: %v", ErrInternalParse, value)
	}
	return goerrors.Wrap(cause, goerrors.CategoryInternal, "description parse aborted").
		WithTextCode(parsePanickedCode)
}
