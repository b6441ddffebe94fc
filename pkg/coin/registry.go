package coin

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gagarin55/wallet-core/pkg/sign"
)

//go:embed registry.yaml
var defaultRegistryYAML []byte

var coinNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$`)

// Info is the catalogue entry of one coin.
type Info struct {
	ID            Type               `yaml:"id"`
	Name          string             `yaml:"name" validate:"required,coin_name"`
	Symbol        string             `yaml:"symbol" validate:"required,max=16"`
	Decimals      uint8              `yaml:"decimals" validate:"lte=30"`
	Blockchain    Blockchain         `yaml:"blockchain" validate:"blockchain"`
	PublicKeyType sign.PublicKeyType `yaml:"public_key_type" validate:"public_key_type"`
	// Address is empty only for coins of unsupported blockchains.
	Address AddressFormat `yaml:"address" validate:"omitempty,address_format"`
	// HRP is the bech32 human-readable part, or the segwit prefix of a
	// Bitcoin-family chain.
	HRP string `yaml:"hrp" validate:"omitempty,lowercase,max=83"`
	// Prefix is prepended to prefixed EVM addresses.
	Prefix string `yaml:"prefix"`
	// P2PKH is the Base58Check version byte of legacy addresses.
	P2PKH uint8 `yaml:"p2pkh"`
}

// IsSupported reports whether addresses of the coin can be derived.
func (i *Info) IsSupported() bool {
	return i.Blockchain.IsSupported()
}

type registryFile struct {
	Coins []Info `yaml:"coins"`
}

// Registry maps coin types to their catalogue entries. It is read-only once
// loaded and safe for concurrent use.
type Registry struct {
	coins map[Type]*Info
	order []Type
}

// DefaultRegistry returns the registry built from the embedded catalogue.
var DefaultRegistry = sync.OnceValue(func() *Registry {
	r, err := parseRegistry(defaultRegistryYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded coin registry: %v", err))
	}
	return r
})

// LoadRegistry decodes and validates a YAML catalogue.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseRegistry(data)
}

// LoadRegistryFile reads a YAML catalogue from path.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadRegistry(f)
}

func parseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}
	if len(file.Coins) == 0 {
		return nil, fmt.Errorf("%w: no coins", ErrInvalidRegistry)
	}

	validate := getValidator()
	r := &Registry{
		coins: make(map[Type]*Info, len(file.Coins)),
		order: make([]Type, 0, len(file.Coins)),
	}
	names := make(map[string]struct{}, len(file.Coins))

	for i := range file.Coins {
		info := &file.Coins[i]
		// Type.String reads the default registry, so never format info.ID
		// with %v or %s here.
		if err := validate.Struct(info); err != nil {
			return nil, fmt.Errorf("%w: coin %d (%s): %v", ErrInvalidRegistry, uint32(info.ID), info.Name, err)
		}
		if _, ok := r.coins[info.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate coin id %d", ErrInvalidRegistry, uint32(info.ID))
		}
		if _, ok := names[info.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate coin name '%s'", ErrInvalidRegistry, info.Name)
		}

		names[info.Name] = struct{}{}
		r.coins[info.ID] = info
		r.order = append(r.order, info.ID)
	}

	return r, nil
}

func getValidator() *validator.Validate {
	validate := validator.New()

	rules := map[string]validator.Func{
		"coin_name": func(fl validator.FieldLevel) bool {
			return coinNameRegex.MatchString(fl.Field().String())
		},
		"blockchain": func(fl validator.FieldLevel) bool {
			return Blockchain(fl.Field().String()).IsKnown()
		},
		"public_key_type": func(fl validator.FieldLevel) bool {
			return sign.PublicKeyType(fl.Field().String()).IsKnown()
		},
		"address_format": func(fl validator.FieldLevel) bool {
			return AddressFormat(fl.Field().String()).IsKnown()
		},
	}
	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
		}
	}

	validate.RegisterStructValidation(validateInfo, Info{})
	return validate
}

// validateInfo checks the rules that span several fields of an entry.
func validateInfo(sl validator.StructLevel) {
	info := sl.Current().Interface().(Info)

	if !info.Blockchain.IsSupported() {
		return
	}
	if !info.PublicKeyType.IsSupported() {
		sl.ReportError(info.PublicKeyType, "PublicKeyType", "public_key_type", "derivable", "")
	}

	codec, ok := codecs[info.Address]
	if !ok {
		sl.ReportError(info.Address, "Address", "address", "required_if_supported", "")
		return
	}
	if codec.keyType != info.PublicKeyType {
		sl.ReportError(info.PublicKeyType, "PublicKeyType", "public_key_type", "eq_"+string(codec.keyType), "")
	}

	switch info.Address {
	case AddressFormatBech32Hash160, AddressFormatBech32Keccak:
		if info.HRP == "" {
			sl.ReportError(info.HRP, "HRP", "hrp", "required_for_bech32", "")
		}
	case AddressFormatEVMPrefixed:
		if info.Prefix == "" {
			sl.ReportError(info.Prefix, "Prefix", "prefix", "required_for_prefixed", "")
		}
	}
}

// Get returns the entry of t. The error is an *UnknownCoinError when the
// registry has no such coin.
func (r *Registry) Get(t Type) (*Info, error) {
	info, ok := r.coins[t]
	if !ok {
		return nil, &UnknownCoinError{Coin: t}
	}
	return info, nil
}

// All returns the catalogued coin types in catalogue order.
func (r *Registry) All() []Type {
	return slices.Clone(r.order)
}

// Supported returns the coin types whose blockchain is supported.
func (r *Registry) Supported() []Type {
	supported := make([]Type, 0, len(r.order))
	for _, t := range r.order {
		if r.coins[t].IsSupported() {
			supported = append(supported, t)
		}
	}
	return supported
}

// supportedInfo resolves t and rejects unsupported coins.
func (r *Registry) supportedInfo(t Type) (*Info, error) {
	info, err := r.Get(t)
	if err != nil {
		return nil, err
	}
	if !info.IsSupported() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedCoin, info.Name, info.Blockchain)
	}
	return info, nil
}

// DeriveAddress encodes pub as an address of coin t. Unsupported coins are
// rejected before the key is looked at.
func (r *Registry) DeriveAddress(pub *sign.PublicKey, t Type, d Derivation) (*Address, error) {
	info, err := r.supportedInfo(t)
	if err != nil {
		return nil, err
	}
	return info.DeriveAddress(pub, d)
}

// ParseAddress validates text as an address of coin t.
func (r *Registry) ParseAddress(text string, t Type) (*Address, error) {
	info, err := r.supportedInfo(t)
	if err != nil {
		return nil, err
	}
	return info.ParseAddress(text)
}

// IsValidAddress reports whether text is a valid address of coin t.
func (r *Registry) IsValidAddress(text string, t Type) bool {
	_, err := r.ParseAddress(text, t)
	return err == nil
}

// DeriveAddress encodes pub with the entry's address routine.
func (i *Info) DeriveAddress(pub *sign.PublicKey, d Derivation) (*Address, error) {
	if !i.IsSupported() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedCoin, i.Name, i.Blockchain)
	}
	if pub.Type() != i.PublicKeyType {
		return nil, fmt.Errorf("%w: %s expects %s, got %s", ErrPublicKeyTypeMismatch, i.Name, i.PublicKeyType, pub.Type())
	}

	codec, ok := codecs[i.Address]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no address format", ErrUnsupportedCoin, i.Name)
	}

	text, data, err := codec.derive(i, pub.Bytes(), d)
	if err != nil {
		return nil, err
	}
	return &Address{coin: i.ID, text: text, data: data}, nil
}

// ParseAddress validates text with the entry's address routine.
func (i *Info) ParseAddress(text string) (*Address, error) {
	if !i.IsSupported() {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedCoin, i.Name, i.Blockchain)
	}

	codec, ok := codecs[i.Address]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no address format", ErrUnsupportedCoin, i.Name)
	}

	data, err := codec.parse(i, text)
	if err != nil {
		return nil, err
	}
	return &Address{coin: i.ID, text: text, data: data}, nil
}
