package coin

// Blockchain tags the family a chain belongs to. Chains of one family share
// key handling and transaction encoding.
type Blockchain string

const (
	BlockchainEthereum         Blockchain = "ethereum"
	BlockchainBitcoin          Blockchain = "bitcoin"
	BlockchainCosmos           Blockchain = "cosmos"
	BlockchainAptos            Blockchain = "aptos"
	BlockchainInternetComputer Blockchain = "internet_computer"
	BlockchainBinance          Blockchain = "binance"
	BlockchainRonin            Blockchain = "ronin"
	BlockchainNativeEvmos      Blockchain = "native_evmos"
	BlockchainNativeInjective  Blockchain = "native_injective"
	BlockchainNativeCanto      Blockchain = "native_canto"

	BlockchainSolana   Blockchain = "solana"
	BlockchainTron     Blockchain = "tron"
	BlockchainPolkadot Blockchain = "polkadot"
	BlockchainNear     Blockchain = "near"
	BlockchainTON      Blockchain = "ton"
	BlockchainCardano  Blockchain = "cardano"
)

var blockchains = map[Blockchain]bool{
	BlockchainEthereum:         true,
	BlockchainBitcoin:          true,
	BlockchainCosmos:           true,
	BlockchainAptos:            true,
	BlockchainInternetComputer: true,
	BlockchainBinance:          true,
	BlockchainRonin:            true,
	BlockchainNativeEvmos:      true,
	BlockchainNativeInjective:  true,
	BlockchainNativeCanto:      true,

	BlockchainSolana:   false,
	BlockchainTron:     false,
	BlockchainPolkadot: false,
	BlockchainNear:     false,
	BlockchainTON:      false,
	BlockchainCardano:  false,
}

// IsKnown reports whether b is a declared family.
func (b Blockchain) IsKnown() bool {
	_, ok := blockchains[b]
	return ok
}

// IsSupported reports whether addresses can be derived for b.
func (b Blockchain) IsSupported() bool {
	return blockchains[b]
}
