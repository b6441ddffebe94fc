package signing

import (
	"errors"
	"fmt"
)

// ErrorType is the failure code carried by signing outputs.
type ErrorType int32

const (
	OK ErrorType = iota
	ErrorGeneral
	ErrorInternal
	ErrorInvalidPrivateKey
	ErrorInvalidPublicKey
	ErrorMissingInput
	ErrorInvalidParams
	ErrorInvalidAddress
	ErrorInvalidRequestedTokenAmount
	ErrorSigning
	ErrorInvalidSignature
	ErrorSignaturesCount
	ErrorNotSupported
)

var errorTypeNames = [...]string{
	OK:                               "ok",
	ErrorGeneral:                     "general",
	ErrorInternal:                    "internal",
	ErrorInvalidPrivateKey:           "invalid_private_key",
	ErrorInvalidPublicKey:            "invalid_public_key",
	ErrorMissingInput:                "missing_input",
	ErrorInvalidParams:               "invalid_params",
	ErrorInvalidAddress:              "invalid_address",
	ErrorInvalidRequestedTokenAmount: "invalid_requested_token_amount",
	ErrorSigning:                     "signing",
	ErrorInvalidSignature:            "invalid_signature",
	ErrorSignaturesCount:             "signatures_count",
	ErrorNotSupported:                "not_supported",
}

func (t ErrorType) String() string {
	if t >= 0 && int(t) < len(errorTypeNames) {
		return errorTypeNames[t]
	}
	return fmt.Sprintf("error_type(%d)", int32(t))
}

// Error is a failure tagged with the code it is reported as.
type Error struct {
	Type ErrorType
	err  error
}

// Errorf creates an Error of type t with a formatted message. %w verbs wrap
// as with fmt.Errorf.
func Errorf(t ErrorType, format string, args ...any) *Error {
	return &Error{Type: t, err: fmt.Errorf(format, args...)}
}

// Wrap tags err with t.
func Wrap(t ErrorType, err error) *Error {
	return &Error{Type: t, err: err}
}

func (e *Error) Error() string {
	if e.err == nil {
		return e.Type.String()
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// TypeOf returns the code of the first *Error in err's chain, or fallback.
func TypeOf(err error, fallback ErrorType) ErrorType {
	var se *Error
	if errors.As(err, &se) {
		return se.Type
	}
	return fallback
}
