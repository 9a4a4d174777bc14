package extension

// Config holds the Vault extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.vault" or "vault" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// Owner is the address allowed to create vesting schedules and settle
	// the sale.
	Owner string `json:"owner" mapstructure:"owner" yaml:"owner"`

	// Self is the vault's own address, the holder of deposited lock balances
	// and sale inventory in the token ledger.
	Self string `json:"self" mapstructure:"self" yaml:"self"`

	// VestingAsset is the asset released by vesting schedules.
	VestingAsset string `json:"vesting_asset" mapstructure:"vesting_asset" yaml:"vesting_asset"`

	// RemovalPolicy selects how withdrawn locks leave a holder's sequence:
	// "soft_delete" (default) or "compact".
	RemovalPolicy string `json:"removal_policy" mapstructure:"removal_policy" yaml:"removal_policy"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RemovalPolicy: "soft_delete",
	}
}
