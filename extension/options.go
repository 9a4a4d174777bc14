package extension

import (
	vault "github.com/xraph/vault"
	"github.com/xraph/vault/plugin"
	"github.com/xraph/vault/store"
	"github.com/xraph/vault/token"
)

// Option configures the Vault Forge extension.
type Option func(*Extension)

// WithStore sets the store for the vault engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithTokens sets the token registry the engine moves balances through.
// A registry is required; Register fails without one.
func WithTokens(r token.Registry) Option {
	return func(e *Extension) {
		e.tokens = r
	}
}

// WithVaultOption passes a vault.Option through to the underlying engine.
func WithVaultOption(opt vault.Option) Option {
	return func(e *Extension) {
		e.vaultOpts = append(e.vaultOpts, opt)
	}
}

// WithPlugin registers a vault plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.vaultOpts = append(e.vaultOpts, vault.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithOwner sets the owner address allowed to create schedules and settle
// the sale.
func WithOwner(owner string) Option {
	return func(e *Extension) { e.config.Owner = owner }
}

// WithSelf sets the vault's own address in the token ledger.
func WithSelf(self string) Option {
	return func(e *Extension) { e.config.Self = self }
}

// WithVestingAsset sets the asset released by vesting schedules.
func WithVestingAsset(asset string) Option {
	return func(e *Extension) { e.config.VestingAsset = asset }
}

// WithRemovalPolicy sets the lock removal policy ("soft_delete" or "compact").
func WithRemovalPolicy(policy string) Option {
	return func(e *Extension) { e.config.RemovalPolicy = policy }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
