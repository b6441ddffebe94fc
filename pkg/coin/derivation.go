package coin

import "fmt"

// Derivation selects one of the address rules a chain supports for the same
// public key.
type Derivation uint32

const (
	DerivationDefault Derivation = iota
	DerivationBitcoinLegacy
	DerivationBitcoinSegwit
	DerivationBitcoinTestnet
)

var derivationNames = map[Derivation]string{
	DerivationDefault:        "default",
	DerivationBitcoinLegacy:  "bitcoin_legacy",
	DerivationBitcoinSegwit:  "bitcoin_segwit",
	DerivationBitcoinTestnet: "bitcoin_testnet",
}

func (d Derivation) String() string {
	if name, ok := derivationNames[d]; ok {
		return name
	}
	return fmt.Sprintf("derivation(%d)", uint32(d))
}

// ParseDerivation is the inverse of Derivation.String.
func ParseDerivation(s string) (Derivation, error) {
	for d, name := range derivationNames {
		if name == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedDerivation, s)
}
