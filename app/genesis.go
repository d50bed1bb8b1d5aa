package app

import "context"

// applyGenesis mints the configured startup balances. Runs once during New,
// under the same branch discipline as any operation.
func (a *App) applyGenesis() error {
	if len(a.cfg.Genesis) == 0 {
		return nil
	}
	return a.run(func(ctx context.Context) error {
		for _, b := range a.cfg.Genesis {
			if err := a.LedgerKeeper.MintCoins(ctx, b.Address, b.Denom, b.Amount); err != nil {
				return err
			}
		}
		a.logger.Info("genesis balances applied", "accounts", len(a.cfg.Genesis))
		return nil
	})
}
