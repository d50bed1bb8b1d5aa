package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/stakeclaim/stakeclaim/x/shared/events"
	"github.com/stakeclaim/stakeclaim/x/shared/state"
	"github.com/stakeclaim/stakeclaim/x/swap/types"
)

// constantProductOut computes the gross output for a net input against a
// reserve pair: reserveOut - (reserveIn * reserveOut) / (reserveIn + netIn).
// Division truncates toward zero, which rounds the subtrahend down; callers
// always deduct the output-side fee from this gross figure.
func constantProductOut(netIn, reserveIn, reserveOut math.Int) math.Int {
	denominator := reserveIn.Add(netIn)
	return reserveOut.Sub(reserveIn.Mul(reserveOut).Quo(denominator))
}

// feeOf returns the basis-point fee on amount, truncated toward zero.
func (k *Keeper) feeOf(amount math.Int) math.Int {
	return amount.MulRaw(int64(k.params.FeeBps)).QuoRaw(types.BpsDenominator)
}

// adjustStakedSubset applies the proportional staked-subset rule after the
// asset reserve moved by delta in an ordinary trade: the subset changes by
// delta * subset / reserveBefore, truncated toward zero and clamped to
// [0, newReserve]. Share counts never change here; only the token value
// behind them does.
func adjustStakedSubset(pool *types.Pool, delta, reserveBefore math.Int) {
	if pool.StakedSubset.IsZero() {
		return
	}
	adj := delta.Mul(pool.StakedSubset).Quo(reserveBefore)
	subset := pool.StakedSubset.Add(adj)
	if subset.IsNegative() {
		subset = math.ZeroInt()
	}
	if subset.GT(pool.AssetReserve) {
		subset = pool.AssetReserve
	}
	pool.StakedSubset = subset
}

// applyAssetSell sells amountIn of the pool's asset into the pool. Mutates
// the in-memory pool. Returns the net hub output and the hub-denominated
// output fee, which the caller routes to the pool's staker accumulator.
// The asset-denominated input fee stays in the reserve.
func (k *Keeper) applyAssetSell(pool *types.Pool, amountIn math.Int) (hubOut, hubFee math.Int, err error) {
	netIn := amountIn.Sub(k.feeOf(amountIn))
	if !netIn.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount.Wrap("amount too small after fees")
	}
	grossOut := constantProductOut(netIn, pool.AssetReserve, pool.HubReserve)
	hubFee = k.feeOf(grossOut)
	hubOut = grossOut.Sub(hubFee)

	reserveBefore := pool.AssetReserve
	pool.AssetReserve = pool.AssetReserve.Add(amountIn)
	adjustStakedSubset(pool, amountIn, reserveBefore)
	pool.HubReserve = pool.HubReserve.Sub(grossOut)
	return hubOut, hubFee, nil
}

// applyAssetBuy buys the pool's asset with hubIn. Returns the net asset
// output and the hub-denominated input fee. The asset-denominated output
// fee stays in the reserve.
func (k *Keeper) applyAssetBuy(pool *types.Pool, hubIn math.Int) (assetOut, hubFee math.Int, err error) {
	hubFee = k.feeOf(hubIn)
	netIn := hubIn.Sub(hubFee)
	if !netIn.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount.Wrap("amount too small after fees")
	}
	grossOut := constantProductOut(netIn, pool.HubReserve, pool.AssetReserve)
	assetOut = grossOut.Sub(k.feeOf(grossOut))

	pool.HubReserve = pool.HubReserve.Add(netIn)
	reserveBefore := pool.AssetReserve
	pool.AssetReserve = pool.AssetReserve.Sub(assetOut)
	adjustStakedSubset(pool, assetOut.Neg(), reserveBefore)
	return assetOut, hubFee, nil
}

// applyExitSell sells amountIn of the exit asset into the exit pool.
func (k *Keeper) applyExitSell(pool *types.ExitPool, amountIn math.Int) (hubOut, hubFee math.Int, err error) {
	netIn := amountIn.Sub(k.feeOf(amountIn))
	if !netIn.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount.Wrap("amount too small after fees")
	}
	grossOut := constantProductOut(netIn, pool.ExitReserve, pool.HubReserve)
	hubFee = k.feeOf(grossOut)
	hubOut = grossOut.Sub(hubFee)

	pool.ExitReserve = pool.ExitReserve.Add(amountIn)
	pool.HubReserve = pool.HubReserve.Sub(grossOut)
	return hubOut, hubFee, nil
}

// applyExitBuy buys the exit asset with hubIn.
func (k *Keeper) applyExitBuy(pool *types.ExitPool, hubIn math.Int) (exitOut, hubFee math.Int, err error) {
	hubFee = k.feeOf(hubIn)
	netIn := hubIn.Sub(hubFee)
	if !netIn.IsPositive() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount.Wrap("amount too small after fees")
	}
	grossOut := constantProductOut(netIn, pool.HubReserve, pool.ExitReserve)
	exitOut = grossOut.Sub(k.feeOf(grossOut))

	pool.HubReserve = pool.HubReserve.Add(netIn)
	pool.ExitReserve = pool.ExitReserve.Sub(exitOut)
	return exitOut, hubFee, nil
}

// creditAssetPoolFee routes a hub-denominated fee to the pool's staker
// accumulator. When no router is bound or the pool has no stakers, the fee
// is retained in the pool's hub reserve instead.
func (k *Keeper) creditAssetPoolFee(ctx context.Context, pool *types.Pool, fee math.Int) error {
	if !fee.IsPositive() {
		return nil
	}
	if k.assetFees != nil {
		accepted, err := k.assetFees.CreditAssetFee(ctx, pool.AssetID, fee)
		if err != nil {
			return err
		}
		if accepted {
			return k.ledger.SendCoins(ctx, k.moduleAddr, k.assetFees.Collector(), k.params.HubDenom, fee)
		}
	}
	pool.HubReserve = pool.HubReserve.Add(fee)
	return nil
}

// creditExitPoolFee routes a hub-denominated exit-pool fee to the
// exit-liquidity accumulator, or retains it in the exit pool's hub reserve.
func (k *Keeper) creditExitPoolFee(ctx context.Context, pool *types.ExitPool, fee math.Int) error {
	if !fee.IsPositive() {
		return nil
	}
	if k.exitFees != nil {
		accepted, err := k.exitFees.CreditExitFee(ctx, fee)
		if err != nil {
			return err
		}
		if accepted {
			return k.ledger.SendCoins(ctx, k.moduleAddr, k.exitFees.Collector(), k.params.HubDenom, fee)
		}
	}
	pool.HubReserve = pool.HubReserve.Add(fee)
	return nil
}

// tokenKind classifies a denom as hub, exit asset, or pool asset.
type tokenKind int

const (
	kindHub tokenKind = iota
	kindExit
	kindAsset
)

func (k *Keeper) classifyToken(ctx context.Context, denom string) (tokenKind, *types.Pool, error) {
	switch denom {
	case k.params.HubDenom:
		return kindHub, nil, nil
	case k.params.ExitDenom:
		return kindExit, nil, nil
	}
	pool, err := k.GetPoolByDenom(ctx, denom)
	if err != nil {
		return 0, nil, types.ErrInvalidRoute.Wrapf("token %s has no pool", denom)
	}
	return kindAsset, pool, nil
}

// SwapExact executes a trade of amountIn tokenIn for tokenOut across one of
// the seven supported routes, failing with ErrSlippage when the output is
// below minOut. Fees: FeeBps on the input before the constant-product
// formula plus FeeBps on the gross output, per leg.
func (k *Keeper) SwapExact(ctx context.Context, trader, tokenIn, tokenOut string, amountIn, minOut math.Int) (math.Int, error) {
	if !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrZeroAmount.Wrap("swap amount must be positive")
	}
	if tokenIn == tokenOut {
		return math.ZeroInt(), types.ErrSameToken.Wrapf("token %s", tokenIn)
	}
	if minOut.IsNegative() {
		return math.ZeroInt(), types.ErrInvalidAmount.Wrap("minimum output cannot be negative")
	}

	inKind, poolIn, err := k.classifyToken(ctx, tokenIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	outKind, poolOut, err := k.classifyToken(ctx, tokenOut)
	if err != nil {
		return math.ZeroInt(), err
	}

	var (
		exitPool  *types.ExitPool
		route     types.Route
		amountOut math.Int
		// Hub fees collected per leg, routed after the slippage check.
		inPoolFee, outPoolFee, exitFee math.Int
	)
	needsExit := inKind == kindExit || outKind == kindExit
	if needsExit {
		exitPool, err = k.GetExitPool(ctx)
		if err != nil {
			return math.ZeroInt(), types.ErrInvalidRoute.Wrap("exit pool not initialized")
		}
	}

	switch {
	case inKind == kindAsset && outKind == kindHub:
		route = types.RouteAssetToHub
		amountOut, inPoolFee, err = k.applyAssetSell(poolIn, amountIn)

	case inKind == kindHub && outKind == kindAsset:
		route = types.RouteHubToAsset
		amountOut, outPoolFee, err = k.applyAssetBuy(poolOut, amountIn)

	case inKind == kindExit && outKind == kindHub:
		route = types.RouteExitToHub
		amountOut, exitFee, err = k.applyExitSell(exitPool, amountIn)

	case inKind == kindHub && outKind == kindExit:
		route = types.RouteHubToExit
		amountOut, exitFee, err = k.applyExitBuy(exitPool, amountIn)

	case inKind == kindAsset && outKind == kindAsset:
		route = types.RouteAssetToAsset
		var hubMid math.Int
		hubMid, inPoolFee, err = k.applyAssetSell(poolIn, amountIn)
		if err == nil {
			amountOut, outPoolFee, err = k.applyAssetBuy(poolOut, hubMid)
		}

	case inKind == kindAsset && outKind == kindExit:
		route = types.RouteAssetToExit
		var hubMid math.Int
		hubMid, inPoolFee, err = k.applyAssetSell(poolIn, amountIn)
		if err == nil {
			amountOut, exitFee, err = k.applyExitBuy(exitPool, hubMid)
		}

	case inKind == kindExit && outKind == kindAsset:
		route = types.RouteExitToAsset
		var hubMid math.Int
		hubMid, exitFee, err = k.applyExitSell(exitPool, amountIn)
		if err == nil {
			amountOut, outPoolFee, err = k.applyAssetBuy(poolOut, hubMid)
		}

	default:
		return math.ZeroInt(), types.ErrInvalidRoute.Wrapf("%s -> %s", tokenIn, tokenOut)
	}
	if err != nil {
		return math.ZeroInt(), err
	}

	// Slippage is checked after computation but before any transfer, so a
	// rejected trade leaves reserves untouched.
	if amountOut.LT(minOut) {
		k.metrics.SwapsTotal.WithLabelValues(string(route), "rejected").Inc()
		return math.ZeroInt(), types.ErrSlippage.Wrapf("expected at least %s, got %s", minOut, amountOut)
	}

	// Pull the input before touching persisted state: a trader with
	// insufficient funds must not move reserves.
	if err := k.ledger.SendCoins(ctx, trader, k.moduleAddr, tokenIn, amountIn); err != nil {
		return math.ZeroInt(), err
	}

	// Route hub fees to the staker accumulators (or back into reserves).
	if poolIn != nil {
		if err := k.creditAssetPoolFee(ctx, poolIn, inPoolFee); err != nil {
			return math.ZeroInt(), err
		}
	}
	if poolOut != nil {
		if err := k.creditAssetPoolFee(ctx, poolOut, outPoolFee); err != nil {
			return math.ZeroInt(), err
		}
	}
	if exitPool != nil {
		if err := k.creditExitPoolFee(ctx, exitPool, exitFee); err != nil {
			return math.ZeroInt(), err
		}
	}

	// Persist updated reserves, then pay out.
	if poolIn != nil {
		k.setPool(ctx, poolIn)
	}
	if poolOut != nil {
		k.setPool(ctx, poolOut)
	}
	if exitPool != nil {
		k.setExitPool(ctx, exitPool)
	}
	if err := k.ledger.SendCoins(ctx, k.moduleAddr, trader, tokenOut, amountOut); err != nil {
		return math.ZeroInt(), err
	}

	state.Events(ctx).EmitEvent(events.NewEvent(
		types.EventTypeSwap,
		events.NewAttribute(types.AttributeKeyTrader, trader),
		events.NewAttribute(types.AttributeKeyRoute, string(route)),
		events.NewAttribute(types.AttributeKeyTokenIn, tokenIn),
		events.NewAttribute(types.AttributeKeyTokenOut, tokenOut),
		events.NewAttribute(types.AttributeKeyAmountIn, amountIn.String()),
		events.NewAttribute(types.AttributeKeyAmountOut, amountOut.String()),
	))
	k.metrics.SwapsTotal.WithLabelValues(string(route), "success").Inc()
	k.logger.Debug("swap executed",
		"trader", trader, "route", string(route),
		"amount_in", amountIn.String(), "amount_out", amountOut.String())
	return amountOut, nil
}
