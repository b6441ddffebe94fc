package coin

// Address is a validated address of one coin.
type Address struct {
	coin Type
	text string
	data []byte
}

func (a *Address) Coin() Type { return a.coin }

// String returns the canonical textual form.
func (a *Address) String() string { return a.text }

// Bytes returns the decoded payload (key hash, account hash, ...). The slice
// is shared with a and must not be modified.
func (a *Address) Bytes() []byte { return a.data }
