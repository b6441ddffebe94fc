package sign

import (
	"encoding/hex"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// PublicKey is a serialized public key tagged with its type.
type PublicKey struct {
	typ  PublicKeyType
	data []byte
}

// NewPublicKey validates data as a key of type typ and copies it.
func NewPublicKey(typ PublicKeyType, data []byte) (*PublicKey, error) {
	if !typ.IsSupported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, typ)
	}
	if len(data) != typ.Size() {
		return nil, fmt.Errorf("%w: %s key must be %d bytes, got %d", ErrInvalidPublicKey, typ, typ.Size(), len(data))
	}

	switch typ {
	case PublicKeyTypeSecp256k1:
		if _, err := ethcrypto.DecompressPubkey(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
	case PublicKeyTypeSecp256k1Extended:
		if _, err := ethcrypto.UnmarshalPubkey(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
		}
	}

	return &PublicKey{typ: typ, data: append([]byte(nil), data...)}, nil
}

func (p *PublicKey) Type() PublicKeyType { return p.typ }

// Bytes returns the serialized key. The slice is shared with p and must not
// be modified.
func (p *PublicKey) Bytes() []byte { return p.data }

func (p *PublicKey) String() string { return hex.EncodeToString(p.data) }
