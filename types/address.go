package types

// Address identifies a holder, beneficiary, or asset. Vault treats addresses
// as opaque strings — whatever encoding the host platform uses (hex, bech32,
// account IDs) passes through unchanged.
type Address string

// ZeroAddress is the null identity. Operations reject it as a beneficiary,
// holder, or asset.
const ZeroAddress Address = ""

// IsZero reports whether the address is the null identity.
func (a Address) IsZero() bool { return a == ZeroAddress }

// String returns the address as a plain string.
func (a Address) String() string { return string(a) }
