package anycoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/handle"
	"github.com/gagarin55/wallet-core/pkg/log"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

const (
	testPrivKey    = "afeefca74d9a325cf1d6b6911d61a65c32afa8e02bd5e78e2e4ac2910bab45f5"
	eip155PrivKey  = "4646464646464646464646464646464646464646464646464646464646464646"
	eip155SignedTx = "0xf86c098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a76400008025a028ef61340bd939bc2195fe537567866003e1a15d3c71ff63e1590620aa636276a067cbe9d8997f761aecb703304b3800ccf555c9f3dc64214b297fb1966a3b6d83"

	testCosmosSender = "cosmos1ten42eesehw0ktddcp0fws7d3ycsqez3lynlqx"
)

var testAddresses = []struct {
	coin       coin.Type
	keyType    sign.PublicKeyType
	derivation coin.Derivation
	expected   string
}{
	{coin.Ethereum, sign.PublicKeyTypeSecp256k1Extended, coin.DerivationDefault, "0xAc1ec44E4f0ca7D172B7803f6836De87Fb72b309"},
	{coin.Polygon, sign.PublicKeyTypeSecp256k1Extended, coin.DerivationDefault, "0xAc1ec44E4f0ca7D172B7803f6836De87Fb72b309"},
	{coin.Ronin, sign.PublicKeyTypeSecp256k1Extended, coin.DerivationDefault, "ronin:Ac1ec44E4f0ca7D172B7803f6836De87Fb72b309"},
	{coin.Bitcoin, sign.PublicKeyTypeSecp256k1, coin.DerivationDefault, "19cAJn4Ms8jodBBGtroBNNpCZiHAWGAq7X"},
	{coin.Bitcoin, sign.PublicKeyTypeSecp256k1, coin.DerivationBitcoinSegwit, "bc1qten42eesehw0ktddcp0fws7d3ycsqez3f7d5yt"},
	{coin.Bitcoin, sign.PublicKeyTypeSecp256k1, coin.DerivationBitcoinTestnet, "mp87bq9LgAB4QHetcRmZCJ2XRhssQX3LLM"},
	{coin.Litecoin, sign.PublicKeyTypeSecp256k1, coin.DerivationBitcoinLegacy, "LTq7ZzNBwnyrsysS4znUePsxmveSaWLyGF"},
	{coin.Dogecoin, sign.PublicKeyTypeSecp256k1, coin.DerivationBitcoinLegacy, "DDkFr311AYe6ABMsdSnjv8yoSr1Tppokp8"},
	{coin.Cosmos, sign.PublicKeyTypeSecp256k1, coin.DerivationDefault, testCosmosSender},
	{coin.Osmosis, sign.PublicKeyTypeSecp256k1, coin.DerivationDefault, "osmo1ten42eesehw0ktddcp0fws7d3ycsqez3hlq0k5"},
	{coin.NativeEvmos, sign.PublicKeyTypeSecp256k1Extended, coin.DerivationDefault, "evmos14s0vgnj0pjnazu4hsqlksdk7slah9vcfvt8ssm"},
	{coin.Aptos, sign.PublicKeyTypeEd25519, coin.DerivationDefault, "0x9006fa46f038224e8004bdda97f2e7a60c2c3d135bce7cb15541e5c0aae907a4"},
	{coin.InternetComputer, sign.PublicKeyTypeSecp256k1Extended, coin.DerivationDefault, "290cc7c359f44c8516fc169c5ed4f0f3ae2e24bf5de0d4c51f5e7545b5474faa"},
}

func newTestCore(t *testing.T) (*Core, *Metrics) {
	t.Helper()
	metrics := NewMetricsWithRegistry("test", prometheus.NewRegistry())
	return NewCore(coin.DefaultRegistry(), metrics, log.NewNoopLogger()), metrics
}

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func decodeOutput(t *testing.T, data []byte) signing.Output {
	t.Helper()
	var out signing.Output
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

// describe runs the full handle chain from raw key to address text and
// releases every handle it created.
func describe(t *testing.T, c *Core, raw []byte, keyType sign.PublicKeyType, coinType coin.Type, d coin.Derivation) string {
	t.Helper()

	key, err := c.CreatePrivateKey(raw)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Release(key)) }()

	pub := c.DerivePublicKey(key, keyType)
	require.False(t, pub.IsNull())
	defer func() { require.NoError(t, c.Release(pub)) }()

	addr, err := c.CreateAddress(pub, coinType, d)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Release(addr)) }()

	text, err := c.DescribeAddress(addr)
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Release(text)) }()

	s, err := c.Text(text)
	require.NoError(t, err)
	return s
}

func TestAddressesThroughHandles(t *testing.T) {
	c, metrics := newTestCore(t)
	raw := mustDecodeHex(t, testPrivKey)

	for _, tc := range testAddresses {
		t.Run(fmt.Sprintf("%s/%s", tc.coin, tc.derivation), func(t *testing.T) {
			assert.Equal(t, tc.expected, describe(t, c, raw, tc.keyType, tc.coin, tc.derivation))
		})
	}

	assert.Equal(t, 0, c.LiveHandles())
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.AddressDerivations.WithLabelValues("bitcoin", "ok")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.LiveHandles.WithLabelValues("address")))
}

func TestParallelDerivations(t *testing.T) {
	c, _ := newTestCore(t)
	raw := mustDecodeHex(t, testPrivKey)

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tc := range testAddresses {
				results[i] = append(results[i], describe(t, c, raw, tc.keyType, tc.coin, tc.derivation))
			}
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.Len(t, got, len(testAddresses))
		for j, tc := range testAddresses {
			assert.Equal(t, tc.expected, got[j])
		}
	}
	assert.Equal(t, 0, c.LiveHandles())
}

func TestCreatePrivateKeyErrors(t *testing.T) {
	c, _ := newTestCore(t)

	h, err := c.CreatePrivateKey(make([]byte, 31))
	require.ErrorIs(t, err, sign.ErrInvalidPrivateKey)
	assert.True(t, h.IsNull())

	h, err = c.CreatePrivateKey(make([]byte, 32))
	require.ErrorIs(t, err, sign.ErrInvalidPrivateKey)
	assert.True(t, h.IsNull())
}

func TestDerivePublicKeyMismatch(t *testing.T) {
	c, _ := newTestCore(t)

	key, err := c.CreatePrivateKey(mustDecodeHex(t, testPrivKey))
	require.NoError(t, err)

	assert.True(t, c.DerivePublicKey(key, sign.PublicKeyTypeNist256p1).IsNull())
	assert.True(t, c.DerivePublicKey(handle.Null, sign.PublicKeyTypeSecp256k1).IsNull())

	// secp256k1 rejects scalars outside [1, n-1]; ed25519 takes any seed.
	over, err := c.CreatePrivateKey(bytes.Repeat([]byte{0xff}, 32))
	require.NoError(t, err)
	assert.True(t, c.DerivePublicKey(over, sign.PublicKeyTypeSecp256k1).IsNull())
	assert.False(t, c.DerivePublicKey(over, sign.PublicKeyTypeEd25519).IsNull())
}

func TestCreateAddressErrors(t *testing.T) {
	c, _ := newTestCore(t)

	key, err := c.CreatePrivateKey(mustDecodeHex(t, testPrivKey))
	require.NoError(t, err)
	compressed := c.DerivePublicKey(key, sign.PublicKeyTypeSecp256k1)

	_, err = c.CreateAddress(compressed, coin.Ethereum, coin.DerivationDefault)
	assert.ErrorIs(t, err, coin.ErrPublicKeyTypeMismatch)

	_, err = c.CreateAddress(compressed, coin.Solana, coin.DerivationDefault)
	assert.ErrorIs(t, err, coin.ErrUnsupportedCoin)

	// Support is checked before the handle is resolved.
	_, err = c.CreateAddress(handle.Null, coin.Solana, coin.DerivationDefault)
	assert.ErrorIs(t, err, coin.ErrUnsupportedCoin)

	_, err = c.CreateAddress(compressed, coin.Cosmos, coin.DerivationBitcoinSegwit)
	assert.ErrorIs(t, err, coin.ErrUnsupportedDerivation)

	_, err = c.CreateAddress(key, coin.Cosmos, coin.DerivationDefault)
	assert.ErrorIs(t, err, handle.ErrHandleKind)

	assert.PanicsWithError(t, (&coin.UnknownCoinError{Coin: 424242}).Error(), func() {
		_, _ = c.CreateAddress(compressed, coin.Type(424242), coin.DerivationDefault)
	})
}

func TestCreateAddressWithString(t *testing.T) {
	c, metrics := newTestCore(t)

	addr, err := c.CreateAddressWithString(testCosmosSender, coin.Cosmos)
	require.NoError(t, err)

	coinType, err := c.AddressCoin(addr)
	require.NoError(t, err)
	assert.Equal(t, coin.Cosmos, coinType)

	data, err := c.AddressData(addr)
	require.NoError(t, err)
	assert.Equal(t, mustDecodeHex(t, "5e67556730cddcfb2dadc05e9743cd8931006451"), data)

	text, err := c.DescribeAddress(addr)
	require.NoError(t, err)
	s, err := c.Text(text)
	require.NoError(t, err)
	assert.Equal(t, testCosmosSender, s)

	addr, err = c.CreateAddressWithString(testCosmosSender, coin.Osmosis)
	assert.ErrorIs(t, err, coin.ErrInvalidAddress)
	assert.True(t, addr.IsNull())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AddressParses.WithLabelValues("cosmos", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.AddressParses.WithLabelValues("osmosis", "error")))
}

func TestHandleLifecycle(t *testing.T) {
	c, metrics := newTestCore(t)

	key, err := c.CreatePrivateKey(mustDecodeHex(t, testPrivKey))
	require.NoError(t, err)
	pub := c.DerivePublicKey(key, sign.PublicKeyTypeSecp256k1)
	require.False(t, pub.IsNull())
	assert.Equal(t, 2, c.LiveHandles())

	// Wrapping a key does not copy it out of the core.
	first, err := c.PublicKeyBytes(pub)
	require.NoError(t, err)
	first[0] ^= 0xff
	second, err := c.PublicKeyBytes(pub)
	require.NoError(t, err)
	assert.Equal(t, mustDecodeHex(t, "0399c6f51ad6f98c9c583f8e92bb7758ab2ca9a04110c0a1126ec43e5453d196c1"), second)

	// The public key outlives the private key it came from.
	require.NoError(t, c.Release(key))
	assert.ErrorIs(t, c.Release(key), handle.ErrInvalidHandle)
	assert.True(t, c.DerivePublicKey(key, sign.PublicKeyTypeSecp256k1).IsNull())

	_, err = c.PublicKeyBytes(pub)
	require.NoError(t, err)

	_, err = c.Text(pub)
	assert.ErrorIs(t, err, handle.ErrHandleKind)
	assert.ErrorIs(t, c.Release(handle.Null), handle.ErrInvalidHandle)

	require.NoError(t, c.Release(pub))
	_, err = c.PublicKeyBytes(pub)
	assert.ErrorIs(t, err, handle.ErrInvalidHandle)

	assert.Equal(t, 0, c.LiveHandles())
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.LiveHandles.WithLabelValues("private_key")))
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.LiveHandles.WithLabelValues("public_key")))
}

func ethereumInput(privKey string) map[string]any {
	return map[string]any{
		"private_key": "0x" + privKey,
		"chain_id":    "1",
		"nonce":       "9",
		"tx_mode":     "legacy",
		"gas_price":   "20000000000",
		"gas_limit":   "21000",
		"to_address":  "0x3535353535353535353535353535353535353535",
		"amount":      "1000000000000000000",
	}
}

func cosmosInput(privKey string) map[string]any {
	return map[string]any{
		"private_key":    "0x" + privKey,
		"chain_id":       "cosmoshub-4",
		"account_number": 1037,
		"sequence":       8,
		"fee": map[string]any{
			"amounts": []any{map[string]any{"denom": "uatom", "amount": "200"}},
			"gas":     200000,
		},
		"messages": []any{map[string]any{
			"from_address": testCosmosSender,
			"to_address":   "cosmos1qqqsyqcyq5rqwzqfpg9scrgwpugpzysnrk363e",
			"amounts":      []any{map[string]any{"denom": "uatom", "amount": "1"}},
		}},
	}
}

func marshalInput(t *testing.T, in map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	return data
}

func TestSignEthereum(t *testing.T) {
	c, metrics := newTestCore(t)

	out := decodeOutput(t, c.Sign(coin.Ethereum, marshalInput(t, ethereumInput(eip155PrivKey))))
	require.Equal(t, signing.OK, out.Error, out.ErrorMessage)
	assert.Equal(t, eip155SignedTx, out.Encoded.String())
	assert.Len(t, out.Signature, sign.Secp256k1SignatureSize)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SignTotal.WithLabelValues("ethereum", "ok")))
}

func TestSignCosmos(t *testing.T) {
	c, _ := newTestCore(t)

	first := c.Sign(coin.Cosmos, marshalInput(t, cosmosInput(testPrivKey)))
	out := decodeOutput(t, first)
	require.Equal(t, signing.OK, out.Error, out.ErrorMessage)
	assert.Contains(t, out.Serialized, `"mode":"block"`)
	assert.Contains(t, out.Serialized, `"type":"tendermint/PubKeySecp256k1"`)

	second := c.Sign(coin.Cosmos, marshalInput(t, cosmosInput(testPrivKey)))
	assert.Equal(t, first, second)
}

func TestSignErrors(t *testing.T) {
	c, metrics := newTestCore(t)

	tcs := []struct {
		name     string
		coin     coin.Type
		input    func() []byte
		expected signing.ErrorType
	}{
		{
			name:     "malformed json",
			coin:     coin.Ethereum,
			input:    func() []byte { return []byte(`{"chain_id":`) },
			expected: signing.ErrorInvalidParams,
		},
		{
			name: "short private key",
			coin: coin.Ethereum,
			input: func() []byte {
				return marshalInput(t, ethereumInput("4646"))
			},
			expected: signing.ErrorInvalidPrivateKey,
		},
		{
			name: "missing gas limit",
			coin: coin.Ethereum,
			input: func() []byte {
				in := ethereumInput(eip155PrivKey)
				delete(in, "gas_limit")
				return marshalInput(t, in)
			},
			expected: signing.ErrorMissingInput,
		},
		{
			name: "zero chain id",
			coin: coin.Ethereum,
			input: func() []byte {
				in := ethereumInput(eip155PrivKey)
				in["chain_id"] = "0"
				return marshalInput(t, in)
			},
			expected: signing.ErrorInvalidParams,
		},
		{
			name: "bad recipient",
			coin: coin.Ethereum,
			input: func() []byte {
				in := ethereumInput(eip155PrivKey)
				in["to_address"] = "0x35"
				return marshalInput(t, in)
			},
			expected: signing.ErrorInvalidAddress,
		},
		{
			name: "cosmos bad amount",
			coin: coin.Cosmos,
			input: func() []byte {
				in := cosmosInput(testPrivKey)
				in["fee"].(map[string]any)["amounts"] = []any{map[string]any{"denom": "uatom", "amount": "-1"}}
				return marshalInput(t, in)
			},
			expected: signing.ErrorInvalidRequestedTokenAmount,
		},
		{
			name: "cosmos foreign sender",
			coin: coin.Cosmos,
			input: func() []byte {
				return marshalInput(t, cosmosInput(eip155PrivKey))
			},
			expected: signing.ErrorInvalidParams,
		},
		{
			name: "cosmos recipient of another chain",
			coin: coin.Cosmos,
			input: func() []byte {
				in := cosmosInput(testPrivKey)
				in["messages"].([]any)[0].(map[string]any)["to_address"] = "osmo1ten42eesehw0ktddcp0fws7d3ycsqez3hlq0k5"
				return marshalInput(t, in)
			},
			expected: signing.ErrorInvalidAddress,
		},
		{
			name:     "bitcoin has no signer",
			coin:     coin.Bitcoin,
			input:    func() []byte { return []byte(`{}`) },
			expected: signing.ErrorNotSupported,
		},
		{
			name:     "binance has no signer",
			coin:     coin.Binance,
			input:    func() []byte { return marshalInput(t, cosmosInput(testPrivKey)) },
			expected: signing.ErrorNotSupported,
		},
		{
			name:     "unsupported coin",
			coin:     coin.Solana,
			input:    func() []byte { return []byte(`{}`) },
			expected: signing.ErrorNotSupported,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := decodeOutput(t, c.Sign(tc.coin, tc.input()))
			assert.Equal(t, tc.expected, out.Error, out.ErrorMessage)
			assert.NotEmpty(t, out.ErrorMessage)
			assert.Empty(t, out.Encoded)
			assert.Empty(t, out.Serialized)
			assert.Empty(t, out.Signature)
		})
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.SignTotal.WithLabelValues("ethereum", "invalid_address")))
}

func TestSignUnknownCoin(t *testing.T) {
	c, _ := newTestCore(t)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, coin.ErrUnknownCoin)

		var unknown *coin.UnknownCoinError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, coin.Type(424242), unknown.Coin)
	}()

	c.Sign(coin.Type(424242), []byte(`{}`))
}

func TestPreimageAndCompile(t *testing.T) {
	c, metrics := newTestCore(t)
	raw := mustDecodeHex(t, eip155PrivKey)

	key, err := sign.NewPrivateKey(raw)
	require.NoError(t, err)
	pub, err := key.PublicKey(sign.PublicKeyTypeSecp256k1Extended)
	require.NoError(t, err)

	in := ethereumInput(eip155PrivKey)
	delete(in, "private_key")
	in["public_key"] = "0x" + pub.String()
	input := marshalInput(t, in)

	var preimage signing.PreimageOutput
	require.NoError(t, json.Unmarshal(c.PreimageHashes(coin.Ethereum, input), &preimage))
	require.Equal(t, signing.OK, preimage.Error, preimage.ErrorMessage)
	assert.Equal(t, "0xdaf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53", preimage.DataHash.String())

	sk, err := key.Secp256k1()
	require.NoError(t, err)
	sig, err := sk.Sign(preimage.DataHash)
	require.NoError(t, err)

	out := decodeOutput(t, c.Compile(coin.Ethereum, input, [][]byte{sig}, [][]byte{pub.Bytes()}))
	require.Equal(t, signing.OK, out.Error, out.ErrorMessage)
	assert.Equal(t, eip155SignedTx, out.Encoded.String())

	out = decodeOutput(t, c.Compile(coin.Ethereum, input, [][]byte{sig, sig}, [][]byte{pub.Bytes()}))
	assert.Equal(t, signing.ErrorSignaturesCount, out.Error)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.PreimageTotal.WithLabelValues("ethereum", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CompileTotal.WithLabelValues("ethereum", "signatures_count")))
}

func TestLogsCarryNoKeyMaterial(t *testing.T) {
	var buf bytes.Buffer
	lg := log.NewZapLogger(log.Config{Format: "json", Level: log.LevelDebug, Output: "stdout"}, zapcore.AddSync(&buf))
	c := NewCore(coin.DefaultRegistry(), nil, lg)

	c.Sign(coin.Ethereum, marshalInput(t, ethereumInput(eip155PrivKey)))
	c.Sign(coin.Cosmos, marshalInput(t, cosmosInput(eip155PrivKey)))

	key, err := c.CreatePrivateKey(mustDecodeHex(t, testPrivKey))
	require.NoError(t, err)
	c.DerivePublicKey(key, sign.PublicKeyTypeStarkex)

	logs := buf.String()
	assert.Contains(t, logs, `"coin":"ethereum"`)
	assert.Contains(t, logs, `"error":"invalid_params"`)
	assert.NotContains(t, logs, eip155PrivKey)
	assert.NotContains(t, logs, testPrivKey)
	assert.False(t, strings.Contains(strings.ToLower(logs), "private_key\":\"0x"))
}

func TestSignContextLogger(t *testing.T) {
	var coreBuf, ctxBuf bytes.Buffer
	conf := log.Config{Format: "logfmt", Level: log.LevelDebug, Output: "stdout"}
	c := NewCore(coin.DefaultRegistry(), nil, log.NewZapLogger(conf, zapcore.AddSync(&coreBuf)))
	ctx := log.SetContextLogger(context.Background(), log.NewZapLogger(conf, zapcore.AddSync(&ctxBuf)))

	out := decodeOutput(t, c.SignContext(ctx, coin.Ethereum, marshalInput(t, ethereumInput(eip155PrivKey))))
	require.Equal(t, signing.OK, out.Error, out.ErrorMessage)

	assert.Contains(t, ctxBuf.String(), "coin=ethereum")
	assert.Empty(t, coreBuf.String())
}
