package signing

import "github.com/ethereum/go-ethereum/common/hexutil"

// PreimageOutput is the result of the first phase: the bytes a signature
// must commit to and their hash.
type PreimageOutput struct {
	Data         hexutil.Bytes `json:"data,omitempty"`
	DataHash     hexutil.Bytes `json:"data_hash,omitempty"`
	Error        ErrorType     `json:"error"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Output is the result of compiling or signing a transaction.
type Output struct {
	// Encoded is the binary transaction, for families that have one.
	Encoded hexutil.Bytes `json:"encoded,omitempty"`
	// Serialized is the textual transaction ready for broadcast.
	Serialized   string        `json:"serialized,omitempty"`
	Signature    hexutil.Bytes `json:"signature,omitempty"`
	Error        ErrorType     `json:"error"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// NewPreimageError builds a failed PreimageOutput. Untyped errors are
// reported as fallback.
func NewPreimageError(err error, fallback ErrorType) *PreimageOutput {
	return &PreimageOutput{Error: TypeOf(err, fallback), ErrorMessage: err.Error()}
}

// NewOutputError builds a failed Output. Untyped errors are reported as
// fallback.
func NewOutputError(err error, fallback ErrorType) *Output {
	return &Output{Error: TypeOf(err, fallback), ErrorMessage: err.Error()}
}
