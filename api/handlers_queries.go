package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

func (s *Server) assetIDParam(c *gin.Context) (uint64, bool) {
	id, err := cast.ToUint64E(c.Param("id"))
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid asset id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListAssets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"assets": s.app.ListAssets()})
}

func (s *Server) handleGetAsset(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	rec, err := s.app.GetAsset(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleGetPool(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	info, err := s.app.GetPoolInfo(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) handleListPools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pools": s.app.ListPools()})
}

func (s *Server) handleGetPrice(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	price, err := s.app.GetPrice(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_id": id, "price": price})
}

func (s *Server) handleGetOwner(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	rec := s.app.GetOwner(id)
	if rec == nil {
		c.JSON(http.StatusOK, gin.H{"asset_id": id, "owner": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"asset_id":     id,
		"owner":        rec.Owner,
		"owner_shares": rec.OwnerShares,
	})
}

func (s *Server) handleGetPositions(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	positions, err := s.app.GetPositions(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset_id": id, "positions": positions})
}

func (s *Server) handleGetStakerPosition(c *gin.Context) {
	id, ok := s.assetIDParam(c)
	if !ok {
		return
	}
	addr := c.Param("address")

	shares := s.app.GetSharesOf(id, addr)
	effective, err := s.app.GetEffectiveBalance(id, addr)
	if err != nil {
		respondError(c, err)
		return
	}
	assetReward, globalReward := s.app.GetPendingRewards(id, addr)
	c.JSON(http.StatusOK, gin.H{
		"asset_id":          id,
		"address":           addr,
		"shares":            shares,
		"effective_balance": effective,
		"pending_reward":    assetReward,
		"pending_global":    globalReward,
	})
}

func (s *Server) handleGetExitPool(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.GetExitPoolInfo())
}

func (s *Server) handleGetBalance(c *gin.Context) {
	addr := c.Param("address")
	denom := c.Param("denom")
	c.JSON(http.StatusOK, gin.H{
		"address": addr,
		"denom":   denom,
		"balance": s.app.GetBalance(addr, denom),
	})
}

func (s *Server) handleGetWeight(c *gin.Context) {
	addr := c.Param("address")
	weight, total := s.app.GetWeight(addr)
	c.JSON(http.StatusOK, gin.H{
		"address":      addr,
		"weight":       weight,
		"total_weight": total,
	})
}
