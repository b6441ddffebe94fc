package cosmos

import "github.com/ethereum/go-ethereum/common/hexutil"

// SigningInput describes a transaction of a Cosmos SDK chain.
type SigningInput struct {
	PrivateKey    hexutil.Bytes `json:"private_key,omitempty"`
	PublicKey     hexutil.Bytes `json:"public_key,omitempty"`
	ChainID       string        `json:"chain_id" validate:"required"`
	AccountNumber uint64        `json:"account_number"`
	Sequence      uint64        `json:"sequence"`
	Memo          string        `json:"memo,omitempty" validate:"max=256"`
	Fee           *Fee          `json:"fee" validate:"required"`
	Messages      []SendMessage `json:"messages" validate:"required,min=1,dive"`
}

// Fee is the transaction fee and gas limit.
type Fee struct {
	Amounts []Amount `json:"amounts" validate:"dive"`
	Gas     uint64   `json:"gas" validate:"gt=0"`
}

// Amount is an integer amount of one denomination.
type Amount struct {
	Denom  string `json:"denom" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

// SendMessage is a bank send.
type SendMessage struct {
	FromAddress string   `json:"from_address" validate:"required"`
	ToAddress   string   `json:"to_address" validate:"required"`
	Amounts     []Amount `json:"amounts" validate:"required,min=1,dive"`
}

func (in SigningInput) GetPrivateKey() []byte { return in.PrivateKey }

func (in SigningInput) WithPublicKey(pub []byte) SigningInput {
	in.PublicKey = append(hexutil.Bytes(nil), pub...)
	return in
}
