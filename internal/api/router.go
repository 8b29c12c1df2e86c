package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samikd35/RebootEarth-Dana/internal/config"
	"github.com/samikd35/RebootEarth-Dana/internal/handler"
	"github.com/samikd35/RebootEarth-Dana/internal/middleware"
)

// Handlers 路由依赖的处理器集合
type Handlers struct {
	Recommend *handler.RecommendHandler
	Farmer    *handler.FarmerHandler
	Result    *handler.ResultHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", h.Recommend.Health)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		// 推荐接口
		api.POST("/recommend", h.Recommend.Recommend)
		api.GET("/recommend/stats", h.Recommend.Stats)

		// 管理接口，需要 admin JWT
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.JWTSecret))
		{
			admin.POST("/farmers", h.Farmer.AddFarmer)
			admin.POST("/farmers/remove", h.Farmer.RemoveFarmer)
			admin.GET("/farmers", h.Farmer.GetAllFarmers)
			admin.GET("/farmers/:location", h.Farmer.GetFarmersByLocation)
			admin.GET("/farmers-near", h.Farmer.GetFarmersNear)
			admin.GET("/locations", h.Farmer.GetLocations)

			admin.GET("/results", h.Result.GetResults)
			admin.GET("/results/:id", h.Result.GetResultByID)
			admin.DELETE("/results/:id", h.Result.DeleteResult)
			admin.POST("/results/send-sms", h.Result.SendResultSMS)
		}
	}

	return r
}
