package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all API routes.
func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api/v1")
	{
		assets := api.Group("/assets")
		{
			assets.GET("", s.handleListAssets)
			assets.GET("/:id", s.handleGetAsset)
			assets.GET("/:id/pool", s.handleGetPool)
			assets.GET("/:id/price", s.handleGetPrice)
			assets.GET("/:id/owner", s.handleGetOwner)
			assets.GET("/:id/positions", s.handleGetPositions)
			assets.GET("/:id/stakers/:address", s.handleGetStakerPosition)
			assets.POST("/launch", s.handleLaunchAsset)
		}

		api.GET("/pools", s.handleListPools)
		api.GET("/exit-pool", s.handleGetExitPool)
		api.GET("/balances/:address/:denom", s.handleGetBalance)
		api.GET("/weight/:address", s.handleGetWeight)

		swap := api.Group("/swap")
		{
			swap.POST("", s.handleSwap)
		}

		stake := api.Group("/stake")
		{
			stake.POST("", s.handleStake)
			stake.POST("/unstake", s.handleUnstake)
			stake.POST("/migrate", s.handleMigrate)
			stake.POST("/migrate/batch", s.handleBatchMigrate)
			stake.POST("/claim", s.handleClaim)
		}

		exit := api.Group("/exit-liquidity")
		{
			exit.POST("", s.handleExitStake)
			exit.POST("/unstake", s.handleExitUnstake)
			exit.POST("/claim", s.handleExitClaim)
			exit.GET("/:address", s.handleGetExitPosition)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
