// Package coin holds the chain catalogue and the address routines.
//
// Every catalogued chain has a Type (its coin number) and an Info entry
// loaded from an embedded YAML file. An entry names the blockchain family,
// the public key type the chain uses and one AddressFormat. Address routines
// are written once per format; chains differ only in entry parameters such as
// the bech32 HRP or the Base58Check version byte:
//
//	reg := coin.DefaultRegistry()
//	addr, err := reg.DeriveAddress(pub, coin.Cosmos, coin.DerivationDefault)
//	// addr.String() == "cosmos1..."
//
// Coins of unsupported blockchains stay in the catalogue so that callers can
// tell ErrUnsupportedCoin apart from an unknown coin number.
package coin
