// Package handle implements opaque tokens for values owned by the core and
// lent to callers.
//
// A Table stores values of one Kind. Insert returns a Handle that stays
// valid until Release; a released handle never resolves again, even if the
// same value is inserted later. The zero Handle is the null handle and never
// resolves.
package handle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidHandle = errors.New("invalid handle")
	ErrHandleKind    = errors.New("handle of wrong kind")
)

// Kind tells apart tables of different value types.
type Kind uint8

const (
	KindNone Kind = iota
	KindPrivateKey
	KindPublicKey
	KindAddress
	KindText
)

var kindNames = map[Kind]string{
	KindNone:       "none",
	KindPrivateKey: "private_key",
	KindPublicKey:  "public_key",
	KindAddress:    "address",
	KindText:       "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Handle is an opaque reference to a value in a Table.
type Handle struct {
	kind  Kind
	token uuid.UUID
}

// Null is the handle returned when creation fails.
var Null = Handle{}

func (h Handle) Kind() Kind { return h.kind }

// IsNull reports whether h is the null handle.
func (h Handle) IsNull() bool { return h == Null }

func (h Handle) String() string {
	if h.IsNull() {
		return "null"
	}
	return h.kind.String() + ":" + h.token.String()
}
