package api

import (
	"errors"
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	"github.com/stakeclaim/stakeclaim/app"
	exittypes "github.com/stakeclaim/stakeclaim/x/exitpool/types"
	ledgertypes "github.com/stakeclaim/stakeclaim/x/ledger/types"
	staketypes "github.com/stakeclaim/stakeclaim/x/stake/types"
	swaptypes "github.com/stakeclaim/stakeclaim/x/swap/types"
	weighttypes "github.com/stakeclaim/stakeclaim/x/weight/types"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// SwapRequest asks for a trade.
type SwapRequest struct {
	Trader   string `json:"trader" binding:"required"`
	TokenIn  string `json:"token_in" binding:"required"`
	TokenOut string `json:"token_out" binding:"required"`
	AmountIn string `json:"amount_in" binding:"required"`
	MinOut   string `json:"min_out"`
}

// StakeRequest asks for a stake deposit or withdrawal.
type StakeRequest struct {
	Staker  string `json:"staker" binding:"required"`
	AssetID uint64 `json:"asset_id" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// MigrateRequest asks for a single cross-asset migration.
type MigrateRequest struct {
	Staker      string `json:"staker" binding:"required"`
	FromAssetID uint64 `json:"from_asset_id" binding:"required"`
	ToAssetID   uint64 `json:"to_asset_id" binding:"required"`
	Shares      string `json:"shares" binding:"required"`
}

// BatchMigrateRequest asks for a batch consolidation.
type BatchMigrateRequest struct {
	Staker       string   `json:"staker" binding:"required"`
	FromAssetIDs []uint64 `json:"from_asset_ids" binding:"required"`
	ToAssetID    uint64   `json:"to_asset_id" binding:"required"`
}

// ClaimRequest asks for a reward claim.
type ClaimRequest struct {
	Staker  string `json:"staker" binding:"required"`
	AssetID uint64 `json:"asset_id" binding:"required"`
}

// ExitStakeRequest asks for an exit-liquidity deposit or withdrawal.
type ExitStakeRequest struct {
	Provider string `json:"provider" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

// ExitClaimRequest asks for an exit-liquidity reward claim.
type ExitClaimRequest struct {
	Provider string `json:"provider" binding:"required"`
}

// LaunchRequest asks for a full asset launch.
type LaunchRequest struct {
	Creator string `json:"creator" binding:"required"`
	Denom   string `json:"denom" binding:"required"`
	Name    string `json:"name"`
}

// parseAmount parses a positive decimal-string amount.
func parseAmount(s string) (math.Int, bool) {
	v, ok := math.NewIntFromString(s)
	return v, ok
}

// parseOptionalAmount parses an amount that defaults to zero when empty.
func parseOptionalAmount(s string) (math.Int, bool) {
	if s == "" {
		return math.ZeroInt(), true
	}
	return math.NewIntFromString(s)
}

// httpStatusOf maps engine errors onto HTTP status codes.
func httpStatusOf(err error) int {
	switch {
	case errors.Is(err, swaptypes.ErrPoolNotFound),
		errors.Is(err, app.ErrAssetNotFound),
		errors.Is(err, swaptypes.ErrExitPoolNotInitialized):
		return http.StatusNotFound
	case errors.Is(err, swaptypes.ErrUnauthorized),
		errors.Is(err, weighttypes.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, app.ErrReentrantCall):
		return http.StatusConflict
	case errors.Is(err, app.ErrMaxAssets),
		errors.Is(err, app.ErrAssetExists),
		errors.Is(err, swaptypes.ErrPoolExists):
		return http.StatusConflict
	case errors.Is(err, ledgertypes.ErrInsufficientFunds),
		errors.Is(err, staketypes.ErrInsufficientShares),
		errors.Is(err, exittypes.ErrInsufficientShares),
		errors.Is(err, swaptypes.ErrInsufficientReserve),
		errors.Is(err, swaptypes.ErrSlippage):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(httpStatusOf(err), ErrorResponse{
		Error:     err.Error(),
		RequestID: c.GetString("request_id"),
	})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     msg,
		RequestID: c.GetString("request_id"),
	})
}
