package token

import (
	"errors"
	"sync"

	"github.com/xraph/vault/types"
)

// ErrUnknownAsset is returned when a registry has no Token for an asset.
var ErrUnknownAsset = errors.New("token: unknown asset")

// Registry resolves asset addresses to their Token implementations. The lock
// ledger accepts arbitrary assets, so the engine looks each one up here before
// moving funds.
type Registry interface {
	Token(asset types.Address) (Token, error)
}

// MapRegistry is a static Registry backed by a map. Safe for concurrent reads
// after construction; Register calls are mutex-guarded.
type MapRegistry struct {
	mu     sync.RWMutex
	tokens map[types.Address]Token
}

// NewMapRegistry creates an empty MapRegistry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{tokens: make(map[types.Address]Token)}
}

// Register binds an asset address to a Token implementation.
func (r *MapRegistry) Register(asset types.Address, t Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[asset] = t
}

// Token implements Registry.
func (r *MapRegistry) Token(asset types.Address) (Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[asset]
	if !ok {
		return nil, ErrUnknownAsset
	}
	return t, nil
}
