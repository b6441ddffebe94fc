// Package anycoin is the boundary of the wallet core.
//
// Callers hold keys, public keys, addresses and texts through opaque handles
// issued by a Core and release them explicitly. Transactions are exchanged as
// JSON documents: Sign takes the family's signing input and returns an output
// record whose error field is the only failure channel. The single exception
// is a coin number missing from the registry, which panics with a
// *coin.UnknownCoinError because it can only come from a caller bug.
package anycoin
