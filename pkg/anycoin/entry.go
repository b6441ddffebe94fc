package anycoin

import (
	"encoding/json"
	"fmt"

	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/cosmos"
	"github.com/gagarin55/wallet-core/pkg/ethereum"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

// entry runs the signing operations of one family on JSON inputs.
type entry interface {
	Sign(info *coin.Info, input []byte) *signing.Output
	PreimageHashes(info *coin.Info, input []byte) *signing.PreimageOutput
	Compile(info *coin.Info, input []byte, signatures, publicKeys [][]byte) *signing.Output
}

// entries binds families to their signing contexts. Supported families that
// are missing here can derive addresses but not sign.
var entries = map[coin.Blockchain]entry{
	coin.BlockchainEthereum:        jsonEntry[ethereum.SigningInput]{ctx: ethereum.Context{}},
	coin.BlockchainRonin:           jsonEntry[ethereum.SigningInput]{ctx: ethereum.Context{}},
	coin.BlockchainCosmos:          jsonEntry[cosmos.SigningInput]{ctx: cosmos.Context{}},
	coin.BlockchainNativeEvmos:     jsonEntry[cosmos.SigningInput]{ctx: cosmos.Context{}},
	coin.BlockchainNativeInjective: jsonEntry[cosmos.SigningInput]{ctx: cosmos.Context{}},
	coin.BlockchainNativeCanto:     jsonEntry[cosmos.SigningInput]{ctx: cosmos.Context{}},
}

// jsonEntry adapts a typed signing context to JSON inputs.
type jsonEntry[T signing.Input[T]] struct {
	ctx signing.Context[T]
}

func (e jsonEntry[T]) decode(input []byte) (T, error) {
	var in T
	if err := json.Unmarshal(input, &in); err != nil {
		return in, signing.Errorf(signing.ErrorInvalidParams, "failed to parse signing input: %v", err)
	}
	return in, nil
}

func (e jsonEntry[T]) Sign(info *coin.Info, input []byte) (out *signing.Output) {
	defer func() {
		if r := recover(); r != nil {
			out = signing.NewOutputError(panicError(r), signing.ErrorInternal)
		}
	}()

	in, err := e.decode(input)
	if err != nil {
		return signing.NewOutputError(err, signing.ErrorInvalidParams)
	}
	return signing.Sign(info, e.ctx, in)
}

func (e jsonEntry[T]) PreimageHashes(info *coin.Info, input []byte) (out *signing.PreimageOutput) {
	defer func() {
		if r := recover(); r != nil {
			out = signing.NewPreimageError(panicError(r), signing.ErrorInternal)
		}
	}()

	in, err := e.decode(input)
	if err != nil {
		return signing.NewPreimageError(err, signing.ErrorInvalidParams)
	}
	return e.ctx.PreimageHashes(info, in)
}

func (e jsonEntry[T]) Compile(info *coin.Info, input []byte, signatures, publicKeys [][]byte) (out *signing.Output) {
	defer func() {
		if r := recover(); r != nil {
			out = signing.NewOutputError(panicError(r), signing.ErrorInternal)
		}
	}()

	in, err := e.decode(input)
	if err != nil {
		return signing.NewOutputError(err, signing.ErrorInvalidParams)
	}
	return e.ctx.Compile(info, in, signatures, publicKeys)
}

// panicError turns a panic of a family library into an error. Families
// must not panic on bad input; this keeps a missed case inside the output
// record.
func panicError(r any) error {
	return fmt.Errorf("signing panicked: %v", r)
}

func lookupEntry(info *coin.Info) (entry, error) {
	if !info.IsSupported() {
		return nil, signing.Errorf(signing.ErrorNotSupported, "coin %s is not supported", info.Name)
	}
	e, ok := entries[info.Blockchain]
	if !ok {
		return nil, signing.Errorf(signing.ErrorNotSupported, "signing is not implemented for %s", info.Blockchain)
	}
	return e, nil
}

// marshalOutput encodes an output record. It does not fail: an encoding error
// is itself reported as an internal error record.
func marshalOutput(out any) []byte {
	data, err := json.Marshal(out)
	if err != nil {
		data, _ = json.Marshal(signing.NewOutputError(err, signing.ErrorInternal))
	}
	return data
}
