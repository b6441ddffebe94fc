package ethereum

import "github.com/ethereum/go-ethereum/common/hexutil"

// TxMode selects the transaction envelope.
type TxMode string

const (
	TxModeLegacy    TxMode = "legacy"
	TxModeEnveloped TxMode = "enveloped"
)

// SigningInput describes a value transfer or contract call.
type SigningInput struct {
	PrivateKey hexutil.Bytes `json:"private_key,omitempty"`
	PublicKey  hexutil.Bytes `json:"public_key,omitempty"`
	ChainID    string        `json:"chain_id" validate:"required,bigint"`
	Nonce      string        `json:"nonce" validate:"omitempty,uint64"`
	TxMode     TxMode        `json:"tx_mode" validate:"omitempty,oneof=legacy enveloped"`
	GasPrice   string        `json:"gas_price" validate:"omitempty,bigint"`
	GasLimit   string        `json:"gas_limit" validate:"required,uint64"`
	// MaxInclusionFeePerGas and MaxFeePerGas are read in enveloped mode only.
	MaxInclusionFeePerGas string `json:"max_inclusion_fee_per_gas" validate:"omitempty,bigint"`
	MaxFeePerGas          string `json:"max_fee_per_gas" validate:"omitempty,bigint"`
	// ToAddress is empty for contract creation.
	ToAddress string        `json:"to_address"`
	Amount    string        `json:"amount" validate:"omitempty,bigint"`
	Data      hexutil.Bytes `json:"data,omitempty"`
}

func (in SigningInput) GetPrivateKey() []byte { return in.PrivateKey }

func (in SigningInput) WithPublicKey(pub []byte) SigningInput {
	in.PublicKey = append(hexutil.Bytes(nil), pub...)
	return in
}
