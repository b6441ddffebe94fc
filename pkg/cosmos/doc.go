// Package cosmos is the signing context of Cosmos SDK chains.
//
// A transaction carries bank send messages and is signed in the legacy amino
// JSON mode: the sign doc is canonical JSON with sorted keys, hashed with
// sha256 (keccak256 for chains with ethermint keys) and signed with a compact
// 64-byte secp256k1 signature. The compiled transaction is broadcast JSON.
package cosmos
