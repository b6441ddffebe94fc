package ethereum

import (
	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

type privateKey struct {
	*sign.Secp256k1PrivateKey
}

// SignTxHash returns r || s || v with v in {0, 1}.
func (k privateKey) SignTxHash(hash []byte) ([]byte, error) {
	sig, err := k.Sign(hash)
	if err != nil {
		return nil, signing.Wrap(signing.ErrorSigning, err)
	}
	return sig, nil
}

func (Context) PrivateKey(raw []byte) (signing.PrivateKey, error) {
	key, err := sign.NewSecp256k1PrivateKey(raw)
	if err != nil {
		return nil, signing.Wrap(signing.ErrorInvalidPrivateKey, err)
	}
	return privateKey{key}, nil
}

func (Context) PublicKey(info *coin.Info, key signing.PrivateKey) (signing.PublicKey, error) {
	pk, ok := key.(privateKey)
	if !ok {
		return nil, signing.Errorf(signing.ErrorInternal, "unexpected private key type %T", key)
	}
	if info.PublicKeyType != sign.PublicKeyTypeSecp256k1Extended {
		return nil, signing.Errorf(signing.ErrorNotSupported, "%s keys are not supported by evm chains", info.PublicKeyType)
	}
	return pk.PublicKey(false), nil
}
