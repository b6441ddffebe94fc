package cosmos

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

// Context signs bank send transactions of Cosmos SDK chains.
type Context struct{}

var _ signing.Context[SigningInput] = Context{}

var validate = validator.New()

// PreimageHashes validates in and returns its amino JSON sign doc and the
// hash to sign.
func (Context) PreimageHashes(info *coin.Info, in SigningInput) *signing.PreimageOutput {
	if err := validateInput(info, in); err != nil {
		return signing.NewPreimageError(err, signing.ErrorInvalidParams)
	}

	doc, err := signDocBytes(in)
	if err != nil {
		return signing.NewPreimageError(err, signing.ErrorInternal)
	}

	return &signing.PreimageOutput{Data: doc, DataHash: signDocHash(info, doc)}
}

// Compile verifies the signature against the sign doc of in and returns the
// broadcast JSON of the signed transaction.
func (Context) Compile(info *coin.Info, in SigningInput, signatures, publicKeys [][]byte) *signing.Output {
	if len(signatures) != 1 || len(publicKeys) != 1 {
		return signing.NewOutputError(signing.Errorf(signing.ErrorSignaturesCount,
			"expected one signature and one public key, got %d and %d", len(signatures), len(publicKeys)), signing.ErrorSignaturesCount)
	}
	sig, pub := signatures[0], publicKeys[0]

	if len(in.PublicKey) != 0 && !bytes.Equal(in.PublicKey, pub) {
		return signing.NewOutputError(signing.Errorf(signing.ErrorInvalidPublicKey,
			"public key does not match the signing input"), signing.ErrorInvalidPublicKey)
	}
	in.PublicKey = pub

	preimage := Context{}.PreimageHashes(info, in)
	if preimage.Error != signing.OK {
		return &signing.Output{Error: preimage.Error, ErrorMessage: preimage.ErrorMessage}
	}

	if err := verifySignature(pub, preimage.DataHash, sig); err != nil {
		return signing.NewOutputError(err, signing.ErrorInvalidSignature)
	}

	pubKeyType := pubKeyTypeSecp256k1
	if info.PublicKeyType == sign.PublicKeyTypeSecp256k1Extended {
		pubKeyType = pubKeyTypeEthSecp256k1
	}

	serialized, err := json.Marshal(jsonBroadcast{
		Mode: broadcastModeBlock,
		Tx: jsonTx{
			Fee:  toJSONFee(in.Fee),
			Memo: in.Memo,
			Msg:  toJSONMsgs(in.Messages),
			Signatures: []jsonSignature{{
				PubKey:    jsonPubKey{Type: pubKeyType, Value: pub},
				Signature: sig,
			}},
		},
	})
	if err != nil {
		return signing.NewOutputError(err, signing.ErrorInternal)
	}

	return &signing.Output{Serialized: string(serialized), Signature: sig}
}

func signDocHash(info *coin.Info, doc []byte) []byte {
	if info.PublicKeyType == sign.PublicKeyTypeSecp256k1Extended {
		return ethcrypto.Keccak256(doc)
	}
	sum := sha256.Sum256(doc)
	return sum[:]
}

func validateInput(info *coin.Info, in SigningInput) error {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "max" {
				return signing.Errorf(signing.ErrorInvalidParams, "%s is too long", fe.Namespace())
			}
			return signing.Errorf(signing.ErrorMissingInput, "%s is missing", fe.Namespace())
		}
		return signing.Wrap(signing.ErrorInvalidParams, err)
	}

	if len(in.PublicKey) == 0 {
		return signing.Errorf(signing.ErrorMissingInput, "public key is missing")
	}
	pub, err := sign.NewPublicKey(info.PublicKeyType, in.PublicKey)
	if err != nil {
		return signing.Wrap(signing.ErrorInvalidPublicKey, err)
	}
	sender, err := info.DeriveAddress(pub, coin.DerivationDefault)
	if err != nil {
		return signing.Wrap(signing.ErrorInvalidPublicKey, err)
	}

	if err := validateAmounts(in.Fee.Amounts); err != nil {
		return err
	}

	for i, msg := range in.Messages {
		if _, err := info.ParseAddress(msg.FromAddress); err != nil {
			return signing.Errorf(signing.ErrorInvalidAddress, "message %d sender: %w", i, err)
		}
		if _, err := info.ParseAddress(msg.ToAddress); err != nil {
			return signing.Errorf(signing.ErrorInvalidAddress, "message %d recipient: %w", i, err)
		}
		if msg.FromAddress != sender.String() {
			return signing.Errorf(signing.ErrorInvalidParams, "message %d sender %s is not the signer %s", i, msg.FromAddress, sender)
		}
		if err := validateAmounts(msg.Amounts); err != nil {
			return err
		}
	}

	return nil
}

func validateAmounts(amounts []Amount) error {
	for _, a := range amounts {
		d, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return signing.Errorf(signing.ErrorInvalidRequestedTokenAmount, "amount %q of %s: %w", a.Amount, a.Denom, err)
		}
		if d.IsNegative() || !d.IsInteger() {
			return signing.Errorf(signing.ErrorInvalidRequestedTokenAmount, "amount %q of %s must be a non-negative integer", a.Amount, a.Denom)
		}
	}
	return nil
}

func verifySignature(pub, hash, sig []byte) error {
	if len(sig) != compactSignatureSize {
		return signing.Errorf(signing.ErrorInvalidSignature, "expected %d-byte signature, got %d", compactSignatureSize, len(sig))
	}

	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return signing.Wrap(signing.ErrorInvalidPublicKey, err)
	}

	var r, s btcec.ModNScalar
	if r.SetByteSlice(sig[:32]) || s.SetByteSlice(sig[32:]) {
		return signing.Errorf(signing.ErrorInvalidSignature, "signature scalar overflows the curve order")
	}
	// Cosmos SDK nodes only accept the low-S form.
	if s.IsOverHalfOrder() {
		return signing.Errorf(signing.ErrorInvalidSignature, "signature is not in low-S form")
	}
	if !ecdsa.NewSignature(&r, &s).Verify(hash, key) {
		return signing.Errorf(signing.ErrorInvalidSignature, "signature does not match the transaction")
	}
	return nil
}
