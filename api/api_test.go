package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/stakeclaim/stakeclaim/api"
	"github.com/stakeclaim/stakeclaim/app"
)

const (
	creator = "alice"
	trader  = "bob"
)

func newTestServer(t *testing.T) (*api.Server, *app.App) {
	t.Helper()

	cfg := app.DefaultConfig()
	cfg.Genesis = []app.GenesisBalance{
		{Address: creator, Denom: cfg.HubDenom, Amount: math.NewInt(10_000)},
		{Address: trader, Denom: cfg.HubDenom, Amount: math.NewInt(100_000)},
	}
	engine, err := app.New(cfg, log.NewNopLogger())
	require.NoError(t, err)

	return api.NewServer(engine, nil, log.NewNopLogger()), engine
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func launchAsset(t *testing.T, h http.Handler, denom, name string) {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api/v1/assets/launch", map[string]string{
		"creator": creator,
		"denom":   denom,
		"name":    name,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decode(t, w)["status"])
}

func TestLaunchAndQueryPool(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	w := doJSON(t, h, http.MethodGet, "/api/v1/assets/1/pool", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pool := decode(t, w)
	require.Equal(t, "umeme", pool["denom"])
	require.Equal(t, "500", pool["hub_reserve"])
	require.Equal(t, "7500000", pool["asset_reserve"])
	require.Equal(t, "2000000", pool["staked_subset"])
	require.Equal(t, creator, pool["owner"])

	w = doJSON(t, h, http.MethodGet, "/api/v1/assets/1/owner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, creator, decode(t, w)["owner"])

	w = doJSON(t, h, http.MethodGet, "/api/v1/assets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assets, ok := decode(t, w)["assets"].([]any)
	require.True(t, ok)
	require.Len(t, assets, 1)
}

func TestSwapEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	w := doJSON(t, h, http.MethodPost, "/api/v1/swap", map[string]string{
		"trader":    trader,
		"token_in":  "uhub",
		"token_out": "umeme",
		"amount_in": "100",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out, ok := math.NewIntFromString(decode(t, w)["amount_out"].(string))
	require.True(t, ok)
	require.True(t, out.IsPositive())
}

func TestSwapSlippageRejected(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	w := doJSON(t, h, http.MethodPost, "/api/v1/swap", map[string]string{
		"trader":    trader,
		"token_in":  "uhub",
		"token_out": "umeme",
		"amount_in": "100",
		"min_out":   "100000000",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
}

func TestStakeAndUnstakeEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	// The creator holds the liquid remainder of the launch supply.
	w := doJSON(t, h, http.MethodPost, "/api/v1/stake", map[string]any{
		"staker":   creator,
		"asset_id": 1,
		"amount":   "100000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	minted, ok := math.NewIntFromString(decode(t, w)["shares"].(string))
	require.True(t, ok)
	require.True(t, minted.IsPositive())

	w = doJSON(t, h, http.MethodPost, "/api/v1/stake/unstake", map[string]any{
		"staker":   creator,
		"asset_id": 1,
		"amount":   minted.String(),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out, ok := math.NewIntFromString(decode(t, w)["amount_out"].(string))
	require.True(t, ok)
	require.True(t, out.IsPositive())

	w = doJSON(t, h, http.MethodGet, "/api/v1/assets/1/stakers/"+creator, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pos := decode(t, w)
	require.Equal(t, "2000000", pos["shares"])
}

func TestMigrateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")
	launchAsset(t, h, "udoge", "Doge")

	w := doJSON(t, h, http.MethodPost, "/api/v1/stake/migrate", map[string]any{
		"staker":        creator,
		"from_asset_id": 1,
		"to_asset_id":   2,
		"shares":        "500000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	minted, ok := math.NewIntFromString(decode(t, w)["shares_minted"].(string))
	require.True(t, ok)
	require.True(t, minted.IsPositive())
}

func TestClaimEndpoint(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	// A trade accrues hub fees to the asset's sole staker, the creator.
	_, err := engine.Swap(trader, "uhub", "umeme", math.NewInt(10_000), math.ZeroInt())
	require.NoError(t, err)

	w := doJSON(t, h, http.MethodPost, "/api/v1/stake/claim", map[string]any{
		"staker":   creator,
		"asset_id": 1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	assetReward, ok := math.NewIntFromString(resp["asset_reward"].(string))
	require.True(t, ok)
	require.True(t, assetReward.IsPositive())
	// The launch creation fee is the creator's pending global reward.
	global, ok := math.NewIntFromString(resp["global_reward"].(string))
	require.True(t, ok)
	require.Equal(t, "10", global.String())
}

func TestExitLiquidityEndpoints(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Router()

	require.NoError(t, engine.Fund(trader, "uusdc", math.NewInt(50_000)))

	w := doJSON(t, h, http.MethodPost, "/api/v1/exit-liquidity", map[string]string{
		"provider": trader,
		"amount":   "10000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode(t, w)
	require.Equal(t, "10000", resp["hub_amount"])
	require.Equal(t, "10000", resp["shares"])

	w = doJSON(t, h, http.MethodGet, "/api/v1/exit-liquidity/"+trader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "10000", decode(t, w)["shares"])

	w = doJSON(t, h, http.MethodGet, "/api/v1/weight/"+trader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "15000", decode(t, w)["weight"])

	w = doJSON(t, h, http.MethodPost, "/api/v1/exit-liquidity/unstake", map[string]string{
		"provider": trader,
		"amount":   "4000",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "4000", decode(t, w)["hub_out"])
}

func TestValidationErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	// Missing required fields.
	w := doJSON(t, h, http.MethodPost, "/api/v1/swap", map[string]string{"trader": trader})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed amount.
	w = doJSON(t, h, http.MethodPost, "/api/v1/stake", map[string]any{
		"staker":   creator,
		"asset_id": 1,
		"amount":   "not-a-number",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Bad path param.
	w = doJSON(t, h, http.MethodGet, "/api/v1/assets/abc/pool", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown asset.
	w = doJSON(t, h, http.MethodGet, "/api/v1/assets/42/pool", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDuplicateLaunchConflicts(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	launchAsset(t, h, "umeme", "Meme")

	w := doJSON(t, h, http.MethodPost, "/api/v1/assets/launch", map[string]string{
		"creator": creator,
		"denom":   "umeme",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newTestServer(t)

	w := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	require.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
