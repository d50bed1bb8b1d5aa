package types

// BpsDenominator is the basis-point scale used for all fee arithmetic.
const BpsDenominator = 10_000

// Default param values.
const (
	DefaultFeeBps    uint64 = 30 // 0.3%
	DefaultHubDenom         = "uhub"
	DefaultExitDenom        = "uusdc"
)

// Params holds the swap engine's fixed configuration. The engine is
// intentionally immutable: params are set at construction and never change.
type Params struct {
	// FeeBps is the per-leg trading fee in basis points, charged once on
	// the input before the constant-product formula and once on the gross
	// output.
	FeeBps uint64 `json:"fee_bps"`
	// HubDenom is the shared intermediate token every pool prices against.
	HubDenom string `json:"hub_denom"`
	// ExitDenom is the off-ramp asset of the singleton exit pool.
	ExitDenom string `json:"exit_denom"`
}

// DefaultParams returns the default swap engine configuration.
func DefaultParams() Params {
	return Params{
		FeeBps:    DefaultFeeBps,
		HubDenom:  DefaultHubDenom,
		ExitDenom: DefaultExitDenom,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if p.FeeBps >= BpsDenominator {
		return ErrInvalidAmount.Wrapf("fee bps %d must be below %d", p.FeeBps, BpsDenominator)
	}
	if p.HubDenom == "" || p.ExitDenom == "" {
		return ErrInvalidAmount.Wrap("hub and exit denoms cannot be empty")
	}
	if p.HubDenom == p.ExitDenom {
		return ErrInvalidAmount.Wrap("hub and exit denoms must differ")
	}
	return nil
}
