package sign

import (
	"crypto/ecdsa"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Secp256k1SignatureSize is the length of r || s || v.
const Secp256k1SignatureSize = 65

// Secp256k1PrivateKey signs 32-byte hashes on the secp256k1 curve.
type Secp256k1PrivateKey struct {
	key *ecdsa.PrivateKey
}

// NewSecp256k1PrivateKey parses a 32-byte scalar in [1, n-1].
func NewSecp256k1PrivateKey(data []byte) (*Secp256k1PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &Secp256k1PrivateKey{key: key}, nil
}

// PublicKey returns the compressed or the extended public key.
func (k *Secp256k1PrivateKey) PublicKey(compressed bool) *PublicKey {
	if compressed {
		return &PublicKey{typ: PublicKeyTypeSecp256k1, data: ethcrypto.CompressPubkey(&k.key.PublicKey)}
	}
	return &PublicKey{typ: PublicKeyTypeSecp256k1Extended, data: ethcrypto.FromECDSAPub(&k.key.PublicKey)}
}

// Sign signs a 32-byte hash deterministically and returns r || s || v with
// v in {0, 1}.
func (k *Secp256k1PrivateKey) Sign(hash []byte) (Signature, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidHash, len(hash))
	}
	sig, err := ethcrypto.Sign(hash, k.key)
	if err != nil {
		return nil, err
	}
	return Signature(sig), nil
}

// Zero wipes the scalar. The key must not be used afterwards.
func (k *Secp256k1PrivateKey) Zero() {
	k.key.D.SetInt64(0)
}

// RecoverSecp256k1 recovers the extended public key that produced sig over
// hash. v may be 0/1 or 27/28.
func RecoverSecp256k1(hash []byte, sig Signature) (*PublicKey, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("%w: expected 32 bytes, got %d", ErrInvalidHash, len(hash))
	}
	if len(sig) != Secp256k1SignatureSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, Secp256k1SignatureSize, len(sig))
	}

	localSig := make([]byte, Secp256k1SignatureSize)
	copy(localSig, sig)
	if localSig[64] >= 27 {
		localSig[64] -= 27
	}

	pub, err := ethcrypto.Ecrecover(hash, localSig)
	if err != nil {
		return nil, fmt.Errorf("%w: recovery failed: %v", ErrInvalidSignature, err)
	}
	return &PublicKey{typ: PublicKeyTypeSecp256k1Extended, data: pub}, nil
}
