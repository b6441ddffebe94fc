package ethereum

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/go-playground/validator/v10"

	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

// Context signs transactions of EVM chains.
type Context struct{}

var _ signing.Context[SigningInput] = Context{}

var validate = getValidator()

func getValidator() *validator.Validate {
	validate := validator.New()

	if err := validate.RegisterValidation("bigint", func(fl validator.FieldLevel) bool {
		n, ok := new(big.Int).SetString(fl.Field().String(), 10)
		return ok && n.Sign() >= 0
	}); err != nil {
		panic(fmt.Sprintf("failed to register bigint validation: %v", err))
	}
	if err := validate.RegisterValidation("uint64", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseUint(fl.Field().String(), 10, 64)
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register uint64 validation: %v", err))
	}
	return validate
}

// PreimageHashes returns the unsigned RLP payload of the transaction and the
// hash the signer commits to.
func (Context) PreimageHashes(info *coin.Info, in SigningInput) *signing.PreimageOutput {
	tx, signer, err := buildTransaction(info, in)
	if err != nil {
		return signing.NewPreimageError(err, signing.ErrorInvalidParams)
	}

	data, err := sigHashPreimage(tx, signer.ChainID())
	if err != nil {
		return signing.NewPreimageError(err, signing.ErrorInternal)
	}

	return &signing.PreimageOutput{Data: data, DataHash: signer.Hash(tx).Bytes()}
}

// Compile attaches the signature and returns the binary encoded transaction.
// The signature must recover to the given public key.
func (Context) Compile(info *coin.Info, in SigningInput, signatures, publicKeys [][]byte) *signing.Output {
	if len(signatures) != 1 || len(publicKeys) != 1 {
		return signing.NewOutputError(signing.Errorf(signing.ErrorSignaturesCount,
			"expected one signature and one public key, got %d and %d", len(signatures), len(publicKeys)), signing.ErrorSignaturesCount)
	}
	sig, pub := signatures[0], publicKeys[0]

	if len(sig) != sign.Secp256k1SignatureSize {
		return signing.NewOutputError(signing.Errorf(signing.ErrorInvalidSignature,
			"expected %d-byte signature, got %d", sign.Secp256k1SignatureSize, len(sig)), signing.ErrorInvalidSignature)
	}

	ecdsaPub, err := ethcrypto.UnmarshalPubkey(pub)
	if err != nil {
		return signing.NewOutputError(signing.Wrap(signing.ErrorInvalidPublicKey, err), signing.ErrorInvalidPublicKey)
	}
	if len(in.PublicKey) != 0 && !bytes.Equal(in.PublicKey, pub) {
		return signing.NewOutputError(signing.Errorf(signing.ErrorInvalidPublicKey,
			"public key does not match the signing input"), signing.ErrorInvalidPublicKey)
	}

	tx, signer, err := buildTransaction(info, in)
	if err != nil {
		return signing.NewOutputError(err, signing.ErrorInvalidParams)
	}

	signed, err := tx.WithSignature(signer, sig)
	if err != nil {
		return signing.NewOutputError(signing.Wrap(signing.ErrorInvalidSignature, err), signing.ErrorInvalidSignature)
	}

	recovered, err := sign.RecoverSecp256k1(signer.Hash(tx).Bytes(), sig)
	if err != nil {
		return signing.NewOutputError(signing.Wrap(signing.ErrorInvalidSignature, err), signing.ErrorInvalidSignature)
	}
	if !bytes.Equal(recovered.Bytes(), ethcrypto.FromECDSAPub(ecdsaPub)) {
		return signing.NewOutputError(signing.Errorf(signing.ErrorInvalidSignature,
			"signature does not recover to the signer"), signing.ErrorInvalidSignature)
	}

	encoded, err := signed.MarshalBinary()
	if err != nil {
		return signing.NewOutputError(err, signing.ErrorInternal)
	}

	return &signing.Output{Encoded: encoded, Signature: sig}
}

func buildTransaction(info *coin.Info, in SigningInput) (*types.Transaction, types.Signer, error) {
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return nil, nil, signing.Errorf(signing.ErrorMissingInput, "%s is missing", fe.Namespace())
			}
			return nil, nil, signing.Errorf(signing.ErrorInvalidParams, "%s is invalid: failed on %s", fe.Namespace(), fe.Tag())
		}
		return nil, nil, signing.Wrap(signing.ErrorInvalidParams, err)
	}

	chainID, _ := new(big.Int).SetString(in.ChainID, 10)
	if chainID.Sign() <= 0 {
		return nil, nil, signing.Errorf(signing.ErrorInvalidParams, "chain id must be positive, got %s", in.ChainID)
	}
	gas, _ := strconv.ParseUint(in.GasLimit, 10, 64)
	nonce := uint64(0)
	if in.Nonce != "" {
		nonce, _ = strconv.ParseUint(in.Nonce, 10, 64)
	}

	var to *common.Address
	if in.ToAddress != "" {
		addr, err := info.ParseAddress(in.ToAddress)
		if err != nil {
			return nil, nil, signing.Wrap(signing.ErrorInvalidAddress, err)
		}
		recipient := common.BytesToAddress(addr.Bytes())
		to = &recipient
	}

	value := parseBig(in.Amount)

	var inner types.TxData
	switch in.TxMode {
	case TxModeLegacy, "":
		if in.GasPrice == "" {
			return nil, nil, signing.Errorf(signing.ErrorMissingInput, "gas price is missing")
		}
		inner = &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: parseBig(in.GasPrice),
			Gas:      gas,
			To:       to,
			Value:    value,
			Data:     in.Data,
		}
	case TxModeEnveloped:
		if in.MaxFeePerGas == "" || in.MaxInclusionFeePerGas == "" {
			return nil, nil, signing.Errorf(signing.ErrorMissingInput, "max fee and max inclusion fee are required for enveloped transactions")
		}
		inner = &types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: parseBig(in.MaxInclusionFeePerGas),
			GasFeeCap: parseBig(in.MaxFeePerGas),
			Gas:       gas,
			To:        to,
			Value:     value,
			Data:      in.Data,
		}
	}

	return types.NewTx(inner), types.LatestSignerForChainID(chainID), nil
}

// sigHashPreimage is the byte string whose keccak256 is the signer hash.
func sigHashPreimage(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	switch tx.Type() {
	case types.LegacyTxType:
		return rlp.EncodeToBytes([]any{
			tx.Nonce(), tx.GasPrice(), tx.Gas(), tx.To(), tx.Value(), tx.Data(),
			chainID, uint(0), uint(0),
		})
	case types.DynamicFeeTxType:
		payload, err := rlp.EncodeToBytes([]any{
			chainID, tx.Nonce(), tx.GasTipCap(), tx.GasFeeCap(), tx.Gas(), tx.To(),
			tx.Value(), tx.Data(), tx.AccessList(),
		})
		if err != nil {
			return nil, err
		}
		return append([]byte{types.DynamicFeeTxType}, payload...), nil
	default:
		return nil, fmt.Errorf("unsupported transaction type %d", tx.Type())
	}
}

func parseBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}
