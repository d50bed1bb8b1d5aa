package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSwap(c *gin.Context) {
	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	amountIn, ok := parseAmount(req.AmountIn)
	if !ok {
		respondBadRequest(c, "invalid amount_in")
		return
	}
	minOut, ok := parseOptionalAmount(req.MinOut)
	if !ok {
		respondBadRequest(c, "invalid min_out")
		return
	}

	out, err := s.app.Swap(req.Trader, req.TokenIn, req.TokenOut, amountIn, minOut)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token_in":   req.TokenIn,
		"token_out":  req.TokenOut,
		"amount_in":  amountIn,
		"amount_out": out,
	})
}

func (s *Server) handleLaunchAsset(c *gin.Context) {
	var req LaunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	rec, err := s.app.LaunchAsset(req.Creator, req.Denom, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}
