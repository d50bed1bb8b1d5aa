package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleExitStake(c *gin.Context) {
	var req ExitStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	amount, ok := parseAmount(req.Amount)
	if !ok {
		respondBadRequest(c, "invalid amount")
		return
	}

	minted, hubAmount, err := s.app.StakeExitLiquidity(req.Provider, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exit_amount": amount,
		"hub_amount":  hubAmount,
		"shares":      minted,
	})
}

func (s *Server) handleExitUnstake(c *gin.Context) {
	var req ExitStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	shares, ok := parseAmount(req.Amount)
	if !ok {
		respondBadRequest(c, "invalid amount")
		return
	}

	hubOut, exitOut, err := s.app.UnstakeExitLiquidity(req.Provider, shares)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"shares":   shares,
		"hub_out":  hubOut,
		"exit_out": exitOut,
	})
}

func (s *Server) handleExitClaim(c *gin.Context) {
	var req ExitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	exitReward, globalReward, err := s.app.ClaimExitRewards(req.Provider)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"exit_reward":   exitReward,
		"global_reward": globalReward,
	})
}

func (s *Server) handleGetExitPosition(c *gin.Context) {
	addr := c.Param("address")
	shares, pending := s.app.GetExitPosition(addr)
	c.JSON(http.StatusOK, gin.H{
		"address": addr,
		"shares":  shares,
		"pending": pending,
	})
}
