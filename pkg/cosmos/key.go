package cosmos

import (
	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

// compactSignatureSize is the length of r || s.
const compactSignatureSize = 64

type privateKey struct {
	*sign.Secp256k1PrivateKey
}

// SignTxHash returns the compact signature, without the recovery byte.
func (k privateKey) SignTxHash(hash []byte) ([]byte, error) {
	sig, err := k.Sign(hash)
	if err != nil {
		return nil, signing.Wrap(signing.ErrorSigning, err)
	}
	return sig[:compactSignatureSize], nil
}

func (Context) PrivateKey(raw []byte) (signing.PrivateKey, error) {
	key, err := sign.NewSecp256k1PrivateKey(raw)
	if err != nil {
		return nil, signing.Wrap(signing.ErrorInvalidPrivateKey, err)
	}
	return privateKey{key}, nil
}

// PublicKey returns the compressed key, or the extended one for chains that
// register secp256k1Extended keys.
func (Context) PublicKey(info *coin.Info, key signing.PrivateKey) (signing.PublicKey, error) {
	pk, ok := key.(privateKey)
	if !ok {
		return nil, signing.Errorf(signing.ErrorInternal, "unexpected private key type %T", key)
	}

	switch info.PublicKeyType {
	case sign.PublicKeyTypeSecp256k1:
		return pk.PublicKey(true), nil
	case sign.PublicKeyTypeSecp256k1Extended:
		return pk.PublicKey(false), nil
	default:
		return nil, signing.Errorf(signing.ErrorNotSupported, "%s keys are not supported by cosmos chains", info.PublicKeyType)
	}
}
