package vault

import "github.com/xraph/vault/types"

// Re-export common types for convenience so users don't have to import types package.

// Amount is re-exported from types package.
type Amount = types.Amount

// Address is re-exported from types package.
type Address = types.Address

// Entity is re-exported from types package.
type Entity = types.Entity

// Wad is one whole token in Amount base units.
const Wad = types.Wad

// ZeroAddress is re-exported from types package.
const ZeroAddress = types.ZeroAddress

// Re-export Amount constructor
var Tokens = types.Tokens

// Re-export Entity constructor
var NewEntity = types.NewEntity
