package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleStake(c *gin.Context) {
	var req StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		respondBadRequest(c, "invalid amount")
		return
	}

	minted, err := s.app.Stake(req.Staker, req.AssetID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id": req.AssetID,
		"amount":   amount,
		"shares":   minted,
	})
}

func (s *Server) handleUnstake(c *gin.Context) {
	var req StakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	shares, ok := parseAmount(req.Amount)
	if !ok {
		respondBadRequest(c, "invalid amount")
		return
	}

	out, err := s.app.Unstake(req.Staker, req.AssetID, shares)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id":   req.AssetID,
		"shares":     shares,
		"amount_out": out,
	})
}

func (s *Server) handleMigrate(c *gin.Context) {
	var req MigrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	shares, ok := parseAmount(req.Shares)
	if !ok {
		respondBadRequest(c, "invalid shares")
		return
	}

	minted, err := s.app.SwapStake(req.Staker, req.FromAssetID, req.ToAssetID, shares)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from_asset_id": req.FromAssetID,
		"to_asset_id":   req.ToAssetID,
		"shares_burned": shares,
		"shares_minted": minted,
	})
}

func (s *Server) handleBatchMigrate(c *gin.Context) {
	var req BatchMigrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	minted, err := s.app.BatchSwapStake(req.Staker, req.FromAssetIDs, req.ToAssetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"from_asset_ids": req.FromAssetIDs,
		"to_asset_id":    req.ToAssetID,
		"shares_minted":  minted,
	})
}

func (s *Server) handleClaim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	assetReward, globalReward, err := s.app.ClaimRewards(req.Staker, req.AssetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id":      req.AssetID,
		"asset_reward":  assetReward,
		"global_reward": globalReward,
	})
}
