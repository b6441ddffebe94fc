package signing

import "github.com/gagarin55/wallet-core/pkg/coin"

// Input is a family's signing input. WithPublicKey must return a copy with
// the public key field set and leave the receiver untouched.
type Input[T any] interface {
	GetPrivateKey() []byte
	WithPublicKey(pub []byte) T
}

// PrivateKey signs preimage hashes in the family's signature format.
type PrivateKey interface {
	SignTxHash(hash []byte) ([]byte, error)
}

// PublicKey serializes to the bytes the family embeds in transactions.
type PublicKey interface {
	Bytes() []byte
}

// Compiler is the two-phase transaction compiler of a family. Both methods
// are pure functions of their arguments and never panic on bad input.
type Compiler[T any] interface {
	// PreimageHashes expects the public key of the input to be set.
	PreimageHashes(info *coin.Info, in T) *PreimageOutput
	// Compile attaches signatures and public keys, position-correlated with
	// the signers of in.
	Compile(info *coin.Info, in T, signatures, publicKeys [][]byte) *Output
}

// Context binds one family's key handling to its compiler.
type Context[T any] interface {
	Compiler[T]
	PrivateKey(raw []byte) (PrivateKey, error)
	PublicKey(info *coin.Info, key PrivateKey) (PublicKey, error)
}
