package app

import (
	"fmt"

	"cosmossdk.io/math"

	swaptypes "github.com/stakeclaim/stakeclaim/x/swap/types"
)

// LaunchConfig fixes the asset-launch sequence: every new asset is seeded,
// auto-staked, and fee-charged identically.
type LaunchConfig struct {
	// SeedHub and SeedAsset are the initial pool reserves.
	SeedHub   math.Int `mapstructure:"seed_hub" json:"seed_hub"`
	SeedAsset math.Int `mapstructure:"seed_asset" json:"seed_asset"`
	// TotalSupply is minted to the creator before seeding.
	TotalSupply math.Int `mapstructure:"total_supply" json:"total_supply"`
	// AutoStake is staked for the creator right after the pool opens, making
	// them the initial owner.
	AutoStake math.Int `mapstructure:"auto_stake" json:"auto_stake"`
	// CreationFee is distributed to the global weight registry.
	CreationFee math.Int `mapstructure:"creation_fee" json:"creation_fee"`
}

// GenesisBalance is one account funding applied at startup.
type GenesisBalance struct {
	Address string   `mapstructure:"address" json:"address"`
	Denom   string   `mapstructure:"denom" json:"denom"`
	Amount  math.Int `mapstructure:"amount" json:"amount"`
}

// Config is the full engine configuration.
type Config struct {
	HubDenom  string `mapstructure:"hub_denom" json:"hub_denom"`
	ExitDenom string `mapstructure:"exit_denom" json:"exit_denom"`
	FeeBps    uint64 `mapstructure:"fee_bps" json:"fee_bps"`

	// MaxAssets caps the number of launched assets.
	MaxAssets uint64 `mapstructure:"max_assets" json:"max_assets"`

	Launch  LaunchConfig     `mapstructure:"launch" json:"launch"`
	Genesis []GenesisBalance `mapstructure:"genesis" json:"genesis"`
}

// DefaultConfig returns the production defaults: 30 bps fee, 500 hub against
// 7,500,000 asset units of seed, 2,000,000 auto-staked out of a 10,000,000
// supply.
func DefaultConfig() Config {
	return Config{
		HubDenom:  swaptypes.DefaultHubDenom,
		ExitDenom: swaptypes.DefaultExitDenom,
		FeeBps:    swaptypes.DefaultFeeBps,
		MaxAssets: 1_000,
		Launch: LaunchConfig{
			SeedHub:     math.NewInt(500),
			SeedAsset:   math.NewInt(7_500_000),
			TotalSupply: math.NewInt(10_000_000),
			AutoStake:   math.NewInt(2_000_000),
			CreationFee: math.NewInt(10),
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	params := swaptypes.Params{FeeBps: c.FeeBps, HubDenom: c.HubDenom, ExitDenom: c.ExitDenom}
	if err := params.Validate(); err != nil {
		return err
	}
	if c.MaxAssets == 0 {
		return fmt.Errorf("max_assets must be positive")
	}
	l := c.Launch
	if !l.SeedHub.IsPositive() || !l.SeedAsset.IsPositive() {
		return fmt.Errorf("launch seed amounts must be positive")
	}
	if l.TotalSupply.LT(l.SeedAsset.Add(l.AutoStake)) {
		return fmt.Errorf("total_supply %s cannot cover seed %s plus auto-stake %s",
			l.TotalSupply, l.SeedAsset, l.AutoStake)
	}
	if l.AutoStake.IsNegative() || l.CreationFee.IsNegative() {
		return fmt.Errorf("auto_stake and creation_fee cannot be negative")
	}
	for _, b := range c.Genesis {
		if b.Address == "" || b.Denom == "" || !b.Amount.IsPositive() {
			return fmt.Errorf("invalid genesis balance for %q", b.Address)
		}
	}
	return nil
}

// SwapParams converts the config into swap module params.
func (c Config) SwapParams() swaptypes.Params {
	return swaptypes.Params{FeeBps: c.FeeBps, HubDenom: c.HubDenom, ExitDenom: c.ExitDenom}
}
