package sign

import "crypto/ed25519"

// Ed25519PrivateKey signs messages with ed25519.
type Ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

func NewEd25519PrivateKey(seed [32]byte) *Ed25519PrivateKey {
	return &Ed25519PrivateKey{key: ed25519.NewKeyFromSeed(seed[:])}
}

func (k *Ed25519PrivateKey) PublicKey() *PublicKey {
	pub := k.key.Public().(ed25519.PublicKey)
	return &PublicKey{typ: PublicKeyTypeEd25519, data: []byte(pub)}
}

// Sign returns the 64-byte ed25519 signature of msg.
func (k *Ed25519PrivateKey) Sign(msg []byte) Signature {
	return Signature(ed25519.Sign(k.key, msg))
}

// Zero wipes the key. The key must not be used afterwards.
func (k *Ed25519PrivateKey) Zero() {
	clear(k.key)
}
