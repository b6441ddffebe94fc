// Package sign holds the key primitives the chain families build on.
//
// A PrivateKey is 32 curve-agnostic bytes. The public key a chain uses is
// selected by PublicKeyType:
//
//	key, err := sign.NewPrivateKey(raw)
//	if err != nil {
//	    return err
//	}
//	defer key.Zero()
//
//	pub, err := key.PublicKey(sign.PublicKeyTypeSecp256k1)
//	// pub.Bytes() is the 33-byte compressed point
//
// Transaction hashes are signed with the curve-specific keys returned by
// PrivateKey.Secp256k1 and PrivateKey.Ed25519. Secp256k1 signatures are
// 65 bytes, r || s || v with v in {0, 1}; families that need the 64-byte
// compact form drop the last byte.
//
// Nothing in this package keeps a reference to caller-owned byte slices.
package sign
