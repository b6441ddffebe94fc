// Package signing defines the contract a chain family implements to take part
// in transaction signing, and the generic signer built on it.
//
// A family supplies a Context: it turns raw bytes into a private key, derives
// the public key the chain expects, computes the preimage hash of a
// transaction and compiles the signed transaction from signatures and public
// keys. Sign runs these steps in order and stops at the first failure:
//
//	out := signing.Sign(info, cosmos.Context{}, input)
//	if out.Error != signing.OK {
//	    return fmt.Errorf("sign: %s: %s", out.Error, out.ErrorMessage)
//	}
//
// Both phases report failures through an ErrorType in their output record.
// The codes are shared by PreimageOutput and Output, so OK is the only success
// value a caller needs to check.
package signing
