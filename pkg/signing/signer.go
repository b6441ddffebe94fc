package signing

import (
	"errors"

	"github.com/gagarin55/wallet-core/pkg/coin"
)

var errNilOutput = errors.New("compiler returned no output")

// Sign derives the key pair from in, computes the preimage, signs its hash and
// compiles the signed transaction. The first failing step ends the run and
// its code is returned unchanged; a failed Output never carries a payload.
func Sign[T Input[T]](info *coin.Info, ctx Context[T], in T) *Output {
	key, err := ctx.PrivateKey(in.GetPrivateKey())
	if err != nil {
		return NewOutputError(err, ErrorInvalidPrivateKey)
	}
	if z, ok := key.(interface{ Zero() }); ok {
		defer z.Zero()
	}

	pub, err := ctx.PublicKey(info, key)
	if err != nil {
		return NewOutputError(err, ErrorInvalidPrivateKey)
	}
	pubBytes := pub.Bytes()

	in = in.WithPublicKey(pubBytes)

	preimage := ctx.PreimageHashes(info, in)
	if preimage == nil {
		return NewOutputError(errNilOutput, ErrorInternal)
	}
	if preimage.Error != OK {
		return &Output{Error: preimage.Error, ErrorMessage: preimage.ErrorMessage}
	}

	signature, err := key.SignTxHash(preimage.DataHash)
	if err != nil {
		return NewOutputError(err, ErrorSigning)
	}

	out := ctx.Compile(info, in, [][]byte{signature}, [][]byte{pubBytes})
	if out == nil {
		return NewOutputError(errNilOutput, ErrorInternal)
	}
	if out.Error != OK {
		return &Output{Error: out.Error, ErrorMessage: out.ErrorMessage}
	}
	return out
}
