// Package ethereum is the signing context of EVM chains.
//
// Legacy transactions are signed with EIP-155 replay protection and enveloped
// ones as EIP-1559 dynamic fee transactions. Numeric fields are decimal
// strings so that amounts above 2^64 survive JSON transport.
package ethereum
