package coin

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"

	"github.com/gagarin55/wallet-core/pkg/sign"
)

// AddressFormat names an address encoding routine. Many chains share one
// routine and differ only in the parameters of their catalogue entry.
type AddressFormat string

const (
	AddressFormatEVM              AddressFormat = "evm"
	AddressFormatEVMPrefixed      AddressFormat = "evm_prefixed"
	AddressFormatBase58CheckP2PKH AddressFormat = "base58check_p2pkh"
	AddressFormatBech32Hash160    AddressFormat = "bech32_hash160"
	AddressFormatBech32Keccak     AddressFormat = "bech32_keccak"
	AddressFormatAptos            AddressFormat = "aptos"
	AddressFormatICPAccount       AddressFormat = "icp_account"
)

type addressCodec struct {
	// keyType is the only public key type the routine accepts.
	keyType sign.PublicKeyType
	derive  func(info *Info, pub []byte, d Derivation) (string, []byte, error)
	parse   func(info *Info, text string) ([]byte, error)
}

var codecs = map[AddressFormat]addressCodec{
	AddressFormatEVM: {
		keyType: sign.PublicKeyTypeSecp256k1Extended,
		derive:  defaultOnly(deriveEVM),
		parse:   parseEVM,
	},
	AddressFormatEVMPrefixed: {
		keyType: sign.PublicKeyTypeSecp256k1Extended,
		derive:  defaultOnly(deriveEVMPrefixed),
		parse:   parseEVMPrefixed,
	},
	AddressFormatBase58CheckP2PKH: {
		keyType: sign.PublicKeyTypeSecp256k1,
		derive:  deriveBitcoin,
		parse:   parseBitcoin,
	},
	AddressFormatBech32Hash160: {
		keyType: sign.PublicKeyTypeSecp256k1,
		derive:  defaultOnly(deriveBech32(btcutil.Hash160)),
		parse:   parseBech32,
	},
	AddressFormatBech32Keccak: {
		keyType: sign.PublicKeyTypeSecp256k1Extended,
		derive:  defaultOnly(deriveBech32(evmAddressBytes)),
		parse:   parseBech32,
	},
	AddressFormatAptos: {
		keyType: sign.PublicKeyTypeEd25519,
		derive:  defaultOnly(deriveAptos),
		parse:   parseAptos,
	},
	AddressFormatICPAccount: {
		keyType: sign.PublicKeyTypeSecp256k1Extended,
		derive:  defaultOnly(deriveICPAccount),
		parse:   parseICPAccount,
	},
}

// IsKnown reports whether f names a registered routine.
func (f AddressFormat) IsKnown() bool {
	_, ok := codecs[f]
	return ok
}

func defaultOnly(derive func(info *Info, pub []byte) (string, []byte, error)) func(*Info, []byte, Derivation) (string, []byte, error) {
	return func(info *Info, pub []byte, d Derivation) (string, []byte, error) {
		if d != DerivationDefault {
			return "", nil, fmt.Errorf("%w: %s for %s", ErrUnsupportedDerivation, d, info.Name)
		}
		return derive(info, pub)
	}
}

func invalidAddress(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAddress, fmt.Sprintf(format, args...))
}

func evmAddressBytes(pub []byte) []byte {
	return ethcrypto.Keccak256(pub[1:])[12:]
}

func deriveEVM(_ *Info, pub []byte) (string, []byte, error) {
	data := evmAddressBytes(pub)
	return common.BytesToAddress(data).Hex(), data, nil
}

func parseEVM(_ *Info, text string) ([]byte, error) {
	if !strings.HasPrefix(text, "0x") || !common.IsHexAddress(text) {
		return nil, invalidAddress("%q is not a 0x-prefixed 20-byte hex string", text)
	}

	addr := common.HexToAddress(text)
	body := text[2:]
	mixedCase := strings.ToLower(body) != body && strings.ToUpper(body) != body
	if mixedCase && addr.Hex() != text {
		return nil, invalidAddress("%q has a bad checksum", text)
	}
	return addr.Bytes(), nil
}

func deriveEVMPrefixed(info *Info, pub []byte) (string, []byte, error) {
	text, data, err := deriveEVM(info, pub)
	if err != nil {
		return "", nil, err
	}
	return info.Prefix + strings.TrimPrefix(text, "0x"), data, nil
}

func parseEVMPrefixed(info *Info, text string) ([]byte, error) {
	body, ok := strings.CutPrefix(text, info.Prefix)
	if !ok {
		return nil, invalidAddress("%q lacks prefix %q", text, info.Prefix)
	}
	return parseEVM(info, "0x"+body)
}

func deriveBitcoin(info *Info, pub []byte, d Derivation) (string, []byte, error) {
	hash := btcutil.Hash160(pub)

	var (
		addr btcutil.Address
		err  error
	)
	switch d {
	case DerivationDefault:
		// TODO: switch to info.P2PKH once every Bitcoin-family chain is
		// finalized; until then all of them share the Bitcoin mainnet address.
		addr, err = btcutil.NewAddressPubKeyHash(hash, &chaincfg.MainNetParams)
	case DerivationBitcoinLegacy:
		addr, err = btcutil.NewAddressPubKeyHash(hash, &chaincfg.Params{PubKeyHashAddrID: info.P2PKH})
	case DerivationBitcoinTestnet:
		addr, err = btcutil.NewAddressPubKeyHash(hash, &chaincfg.TestNet3Params)
	case DerivationBitcoinSegwit:
		if info.HRP == "" {
			return "", nil, fmt.Errorf("%w: %s has no segwit prefix", ErrUnsupportedDerivation, info.Name)
		}
		addr, err = btcutil.NewAddressWitnessPubKeyHash(hash, &chaincfg.Params{Bech32HRPSegwit: info.HRP})
	default:
		return "", nil, fmt.Errorf("%w: %s for %s", ErrUnsupportedDerivation, d, info.Name)
	}
	if err != nil {
		return "", nil, err
	}

	return addr.EncodeAddress(), hash, nil
}

func parseBitcoin(info *Info, text string) ([]byte, error) {
	if info.HRP != "" && strings.HasPrefix(strings.ToLower(text), info.HRP+"1") {
		return parseSegwit(info, text)
	}

	payload, version, err := base58.CheckDecode(text)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	if len(payload) != 20 {
		return nil, invalidAddress("%q: payload is %d bytes", text, len(payload))
	}

	switch version {
	case info.P2PKH, chaincfg.MainNetParams.PubKeyHashAddrID, chaincfg.TestNet3Params.PubKeyHashAddrID:
		return payload, nil
	default:
		return nil, invalidAddress("%q: unexpected version byte %d", text, version)
	}
}

func parseSegwit(info *Info, text string) ([]byte, error) {
	hrp, data, err := bech32.Decode(text)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	if hrp != info.HRP || len(data) == 0 || data[0] != 0 {
		return nil, invalidAddress("%q is not a version 0 witness address for %q", text, info.HRP)
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}

	addr, err := btcutil.NewAddressWitnessPubKeyHash(program, &chaincfg.Params{Bech32HRPSegwit: info.HRP})
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	return addr.ScriptAddress(), nil
}

func deriveBech32(payload func([]byte) []byte) func(*Info, []byte) (string, []byte, error) {
	return func(info *Info, pub []byte) (string, []byte, error) {
		data := payload(pub)
		conv, err := bech32.ConvertBits(data, 8, 5, true)
		if err != nil {
			return "", nil, err
		}
		text, err := bech32.Encode(info.HRP, conv)
		if err != nil {
			return "", nil, err
		}
		return text, data, nil
	}
}

func parseBech32(info *Info, text string) ([]byte, error) {
	hrp, data, err := bech32.Decode(text)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	if hrp != info.HRP {
		return nil, invalidAddress("%q: expected prefix %q, got %q", text, info.HRP, hrp)
	}

	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	if len(payload) != 20 {
		return nil, invalidAddress("%q: payload is %d bytes", text, len(payload))
	}
	return payload, nil
}

const aptosEd25519Scheme = 0x00

func deriveAptos(_ *Info, pub []byte) (string, []byte, error) {
	sum := sha3.Sum256(append(append([]byte(nil), pub...), aptosEd25519Scheme))
	return "0x" + hex.EncodeToString(sum[:]), sum[:], nil
}

// parseAptos accepts the short form with leading zeros dropped.
func parseAptos(_ *Info, text string) ([]byte, error) {
	body, ok := strings.CutPrefix(text, "0x")
	if !ok || len(body) == 0 || len(body) > 64 {
		return nil, invalidAddress("%q is not a 0x-prefixed hex string of at most 32 bytes", text)
	}

	data, err := hex.DecodeString(strings.Repeat("0", 64-len(body)) + body)
	if err != nil {
		return nil, invalidAddress("%q: %v", text, err)
	}
	return data, nil
}

var (
	// DER SubjectPublicKeyInfo header for an uncompressed secp256k1 point.
	icpSecp256k1DERPrefix = []byte{
		0x30, 0x56, 0x30, 0x10, 0x06, 0x07, 0x2a, 0x86, 0x48, 0xce, 0x3d, 0x02, 0x01,
		0x06, 0x05, 0x2b, 0x81, 0x04, 0x00, 0x0a, 0x03, 0x42, 0x00,
	}
	icpAccountDomain = []byte("\x0aaccount-id")
)

const icpSelfAuthenticating = 0x02

func deriveICPAccount(_ *Info, pub []byte) (string, []byte, error) {
	der := append(append([]byte(nil), icpSecp256k1DERPrefix...), pub...)
	digest := sha256.Sum224(der)
	principal := append(digest[:], icpSelfAuthenticating)

	var subaccount [32]byte
	h := sha256.New224()
	h.Write(icpAccountDomain)
	h.Write(principal)
	h.Write(subaccount[:])
	hash := h.Sum(nil)

	account := binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(hash))
	account = append(account, hash...)
	return hex.EncodeToString(account), account, nil
}

func parseICPAccount(_ *Info, text string) ([]byte, error) {
	data, err := hex.DecodeString(text)
	if err != nil || len(data) != 32 {
		return nil, invalidAddress("%q is not a 32-byte hex account identifier", text)
	}
	if !bytes.Equal(data[:4], binary.BigEndian.AppendUint32(nil, crc32.ChecksumIEEE(data[4:]))) {
		return nil, invalidAddress("%q has a bad checksum", text)
	}
	return data, nil
}
