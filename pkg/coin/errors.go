package coin

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCoin           = errors.New("unknown coin")
	ErrUnsupportedCoin       = errors.New("unsupported coin")
	ErrUnsupportedDerivation = errors.New("unsupported derivation")
	ErrPublicKeyTypeMismatch = errors.New("public key type mismatch")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidRegistry       = errors.New("invalid coin registry")
)

// UnknownCoinError is raised for a coin number the registry has never heard
// of. Callers treat it as a configuration error rather than a result.
type UnknownCoinError struct {
	Coin Type
}

func (e *UnknownCoinError) Error() string {
	return fmt.Sprintf("unknown coin %d", uint32(e.Coin))
}

func (e *UnknownCoinError) Is(target error) bool {
	return target == ErrUnknownCoin
}
