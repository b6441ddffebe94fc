package sign

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	ErrInvalidPrivateKey  = errors.New("invalid private key")
	ErrInvalidPublicKey   = errors.New("invalid public key")
	ErrUnsupportedKeyType = errors.New("unsupported public key type")
	ErrInvalidHash        = errors.New("invalid hash length")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// PublicKeyType names a curve together with its point serialization.
type PublicKeyType string

const (
	PublicKeyTypeSecp256k1         PublicKeyType = "secp256k1"
	PublicKeyTypeSecp256k1Extended PublicKeyType = "secp256k1Extended"
	PublicKeyTypeEd25519           PublicKeyType = "ed25519"

	// Known to the catalogue but not derivable here.
	PublicKeyTypeNist256p1      PublicKeyType = "nist256p1"
	PublicKeyTypeCurve25519     PublicKeyType = "curve25519"
	PublicKeyTypeEd25519Blake2b PublicKeyType = "ed25519Blake2b"
	PublicKeyTypeEd25519Cardano PublicKeyType = "ed25519Cardano"
	PublicKeyTypeStarkex        PublicKeyType = "starkex"
)

// Size returns the serialized length of a public key of this type, or 0 when
// the type cannot be derived.
func (t PublicKeyType) Size() int {
	switch t {
	case PublicKeyTypeSecp256k1:
		return 33
	case PublicKeyTypeSecp256k1Extended:
		return 65
	case PublicKeyTypeEd25519:
		return 32
	default:
		return 0
	}
}

// IsSupported reports whether keys of this type can be derived.
func (t PublicKeyType) IsSupported() bool {
	return t.Size() != 0
}

// IsKnown reports whether t is one of the declared types.
func (t PublicKeyType) IsKnown() bool {
	switch t {
	case PublicKeyTypeSecp256k1, PublicKeyTypeSecp256k1Extended, PublicKeyTypeEd25519,
		PublicKeyTypeNist256p1, PublicKeyTypeCurve25519, PublicKeyTypeEd25519Blake2b,
		PublicKeyTypeEd25519Cardano, PublicKeyTypeStarkex:
		return true
	default:
		return false
	}
}

// Signature is a raw signature. It encodes to JSON as a 0x-prefixed hex string.
type Signature []byte

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	*s = decoded
	return nil
}

func (s Signature) String() string {
	return hexutil.Encode(s)
}
