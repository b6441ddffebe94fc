package sign

import (
	"crypto/subtle"
	"fmt"
)

// PrivateKeySize is the length of every private key handled by the core.
const PrivateKeySize = 32

// PrivateKey is a curve-agnostic private key. The curve is chosen when a
// public key or a signing key is derived from it.
type PrivateKey struct {
	data [PrivateKeySize]byte
}

// NewPrivateKey copies data into a new PrivateKey. data must be 32 bytes and
// not all zero; curve-specific range checks happen on derivation.
func NewPrivateKey(data []byte) (*PrivateKey, error) {
	if len(data) != PrivateKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(data))
	}

	var zero [PrivateKeySize]byte
	if subtle.ConstantTimeCompare(data, zero[:]) == 1 {
		return nil, fmt.Errorf("%w: all-zero key", ErrInvalidPrivateKey)
	}

	key := &PrivateKey{}
	copy(key.data[:], data)
	return key, nil
}

// PublicKey derives the public key of type typ.
func (k *PrivateKey) PublicKey(typ PublicKeyType) (*PublicKey, error) {
	switch typ {
	case PublicKeyTypeSecp256k1, PublicKeyTypeSecp256k1Extended:
		sk, err := k.Secp256k1()
		if err != nil {
			return nil, err
		}
		return sk.PublicKey(typ == PublicKeyTypeSecp256k1), nil
	case PublicKeyTypeEd25519:
		return k.Ed25519().PublicKey(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, typ)
	}
}

// Secp256k1 interprets the key as a secp256k1 scalar.
func (k *PrivateKey) Secp256k1() (*Secp256k1PrivateKey, error) {
	return NewSecp256k1PrivateKey(k.data[:])
}

// Ed25519 interprets the key as an ed25519 seed.
func (k *PrivateKey) Ed25519() *Ed25519PrivateKey {
	return NewEd25519PrivateKey(k.data)
}

// Zero wipes the key. The key must not be used afterwards.
func (k *PrivateKey) Zero() {
	clear(k.data[:])
}
