package anycoin

import (
	"bytes"
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gagarin55/wallet-core/pkg/coin"
	"github.com/gagarin55/wallet-core/pkg/handle"
	"github.com/gagarin55/wallet-core/pkg/log"
	"github.com/gagarin55/wallet-core/pkg/sign"
	"github.com/gagarin55/wallet-core/pkg/signing"
)

// Core owns every value lent to callers through handles. It is safe for
// concurrent use.
type Core struct {
	lg       log.Logger
	registry *coin.Registry
	metrics  *Metrics

	privateKeys *handle.Table[*sign.PrivateKey]
	publicKeys  *handle.Table[*sign.PublicKey]
	addresses   *handle.Table[*coin.Address]
	texts       *handle.Table[string]
}

// NewCore creates a Core over registry. Released private keys are wiped.
// Without metrics the core registers its own on a private registry.
func NewCore(registry *coin.Registry, metrics *Metrics, lg log.Logger) *Core {
	if lg == nil {
		lg = log.NewNoopLogger()
	}
	if metrics == nil {
		metrics = NewMetricsWithRegistry("", prometheus.NewRegistry())
	}

	return &Core{
		lg:          lg.WithName("anycoin"),
		registry:    registry,
		metrics:     metrics,
		privateKeys: handle.NewTable(handle.KindPrivateKey, (*sign.PrivateKey).Zero),
		publicKeys:  handle.NewTable[*sign.PublicKey](handle.KindPublicKey, nil),
		addresses:   handle.NewTable[*coin.Address](handle.KindAddress, nil),
		texts:       handle.NewTable[string](handle.KindText, nil),
	}
}

// NewCoreFromConfig builds the registry and metrics described by conf.
func NewCoreFromConfig(conf *Config, registerer prometheus.Registerer, lg log.Logger) (*Core, error) {
	if lg == nil {
		lg = log.NewNoopLogger()
	}

	registry := coin.DefaultRegistry()
	if conf.RegistryPath != "" {
		var err error
		registry, err = coin.LoadRegistryFile(conf.RegistryPath)
		if err != nil {
			return nil, err
		}
		lg.Info("loaded coin registry", "path", conf.RegistryPath, "coins", len(registry.All()))
	}

	return NewCore(registry, NewMetricsWithRegistry(conf.MetricsNamespace, registerer), lg), nil
}

// Registry returns the catalogue the core resolves coins with.
func (c *Core) Registry() *coin.Registry {
	return c.registry
}

// CreatePrivateKey copies raw into a new private key.
func (c *Core) CreatePrivateKey(raw []byte) (handle.Handle, error) {
	key, err := sign.NewPrivateKey(raw)
	if err != nil {
		return handle.Null, err
	}
	return c.track(c.privateKeys.Insert(key)), nil
}

// DerivePublicKey derives the public key of type typ. It returns the null
// handle when the key cannot be used with typ.
func (c *Core) DerivePublicKey(key handle.Handle, typ sign.PublicKeyType) handle.Handle {
	priv, err := c.privateKeys.Get(key)
	if err != nil {
		c.lg.Debug("public key derivation failed", "type", typ, "error", err)
		return handle.Null
	}

	pub, err := priv.PublicKey(typ)
	if err != nil {
		c.lg.Debug("public key derivation failed", "type", typ, "error", err)
		return handle.Null
	}
	return c.track(c.publicKeys.Insert(pub))
}

// PublicKeyBytes returns a copy of the serialized public key.
func (c *Core) PublicKeyBytes(pub handle.Handle) ([]byte, error) {
	p, err := c.publicKeys.Get(pub)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(p.Bytes()), nil
}

// CreateAddress derives the address of pub for coin t. It panics if t is
// not in the registry.
func (c *Core) CreateAddress(pub handle.Handle, t coin.Type, d coin.Derivation) (handle.Handle, error) {
	info := c.mustGet(t)
	if !info.IsSupported() {
		c.metrics.AddressDerivations.WithLabelValues(info.Name, resultLabel(coin.ErrUnsupportedCoin)).Inc()
		return handle.Null, fmt.Errorf("%w: %s (%s)", coin.ErrUnsupportedCoin, info.Name, info.Blockchain)
	}

	p, err := c.publicKeys.Get(pub)
	if err != nil {
		return handle.Null, err
	}

	addr, err := info.DeriveAddress(p, d)
	c.metrics.AddressDerivations.WithLabelValues(info.Name, resultLabel(err)).Inc()
	if err != nil {
		c.lg.Debug("address derivation failed", "coin", info.Name, "derivation", d, "pub", log.Fingerprint(p.Bytes()), "error", err)
		return handle.Null, err
	}
	return c.track(c.addresses.Insert(addr)), nil
}

// CreateAddressWithString validates text as an address of coin t. It panics
// if t is not in the registry.
func (c *Core) CreateAddressWithString(text string, t coin.Type) (handle.Handle, error) {
	info := c.mustGet(t)

	addr, err := info.ParseAddress(text)
	c.metrics.AddressParses.WithLabelValues(info.Name, resultLabel(err)).Inc()
	if err != nil {
		return handle.Null, err
	}
	return c.track(c.addresses.Insert(addr)), nil
}

// AddressCoin returns the coin an address belongs to.
func (c *Core) AddressCoin(addr handle.Handle) (coin.Type, error) {
	a, err := c.addresses.Get(addr)
	if err != nil {
		return 0, err
	}
	return a.Coin(), nil
}

// AddressData returns a copy of the decoded address payload.
func (c *Core) AddressData(addr handle.Handle) ([]byte, error) {
	a, err := c.addresses.Get(addr)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(a.Bytes()), nil
}

// DescribeAddress renders the canonical text of addr into a new text handle.
func (c *Core) DescribeAddress(addr handle.Handle) (handle.Handle, error) {
	a, err := c.addresses.Get(addr)
	if err != nil {
		return handle.Null, err
	}
	return c.track(c.texts.Insert(a.String())), nil
}

// Text returns the string behind a text handle.
func (c *Core) Text(text handle.Handle) (string, error) {
	return c.texts.Get(text)
}

// Release invalidates h and frees its value. Private keys are wiped.
func (c *Core) Release(h handle.Handle) error {
	var err error
	switch h.Kind() {
	case handle.KindPrivateKey:
		err = c.privateKeys.Release(h)
	case handle.KindPublicKey:
		err = c.publicKeys.Release(h)
	case handle.KindAddress:
		err = c.addresses.Release(h)
	case handle.KindText:
		err = c.texts.Release(h)
	default:
		return fmt.Errorf("%w: %s", handle.ErrInvalidHandle, h)
	}
	if err != nil {
		return err
	}

	c.metrics.LiveHandles.WithLabelValues(h.Kind().String()).Dec()
	return nil
}

// Sign signs the JSON signing input of coin t and returns the JSON output
// record. It panics if t is not in the registry.
func (c *Core) Sign(t coin.Type, input []byte) []byte {
	return c.SignContext(context.Background(), t, input)
}

// SignContext is Sign logging through the logger stored in ctx, if any.
func (c *Core) SignContext(ctx context.Context, t coin.Type, input []byte) []byte {
	info := c.mustGet(t)

	var out *signing.Output
	if e, err := lookupEntry(info); err != nil {
		out = signing.NewOutputError(err, signing.ErrorNotSupported)
	} else {
		out = e.Sign(info, input)
	}

	c.observe(c.contextLogger(ctx), c.metrics.SignTotal, "sign", info, out.Error, out.ErrorMessage)
	return marshalOutput(out)
}

// PreimageHashes returns the JSON preimage record of the signing input of
// coin t. The input must carry the public key of its signer.
func (c *Core) PreimageHashes(t coin.Type, input []byte) []byte {
	info := c.mustGet(t)

	var out *signing.PreimageOutput
	if e, err := lookupEntry(info); err != nil {
		out = signing.NewPreimageError(err, signing.ErrorNotSupported)
	} else {
		out = e.PreimageHashes(info, input)
	}

	c.observe(c.lg, c.metrics.PreimageTotal, "preimage_hashes", info, out.Error, out.ErrorMessage)
	return marshalOutput(out)
}

// Compile attaches externally produced signatures and public keys to the
// signing input of coin t.
func (c *Core) Compile(t coin.Type, input []byte, signatures, publicKeys [][]byte) []byte {
	info := c.mustGet(t)

	var out *signing.Output
	if e, err := lookupEntry(info); err != nil {
		out = signing.NewOutputError(err, signing.ErrorNotSupported)
	} else {
		out = e.Compile(info, input, signatures, publicKeys)
	}

	c.observe(c.lg, c.metrics.CompileTotal, "compile", info, out.Error, out.ErrorMessage)
	return marshalOutput(out)
}

// LiveHandles returns the number of unreleased handles of every kind.
func (c *Core) LiveHandles() int {
	return c.privateKeys.Len() + c.publicKeys.Len() + c.addresses.Len() + c.texts.Len()
}

func (c *Core) mustGet(t coin.Type) *coin.Info {
	info, err := c.registry.Get(t)
	if err != nil {
		panic(err)
	}
	return info
}

func (c *Core) track(h handle.Handle) handle.Handle {
	c.metrics.LiveHandles.WithLabelValues(h.Kind().String()).Inc()
	return h
}

func (c *Core) contextLogger(ctx context.Context) log.Logger {
	lg := log.FromContext(ctx)
	if _, noop := lg.(log.NoopLogger); !noop {
		return lg
	}
	return c.lg
}

func (c *Core) observe(lg log.Logger, counter *prometheus.CounterVec, op string, info *coin.Info, code signing.ErrorType, msg string) {
	counter.WithLabelValues(info.Name, code.String()).Inc()

	if code != signing.OK {
		lg.Warn("signing operation failed", "op", op, "coin", info.Name, "error", code.String(), "message", msg)
		return
	}
	lg.Debug("signing operation succeeded", "op", op, "coin", info.Name)
}
