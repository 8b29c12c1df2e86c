package main

import (
	"log"

	"github.com/samikd35/RebootEarth-Dana/internal/api"
	"github.com/samikd35/RebootEarth-Dana/internal/cache"
	"github.com/samikd35/RebootEarth-Dana/internal/config"
	"github.com/samikd35/RebootEarth-Dana/internal/database"
	"github.com/samikd35/RebootEarth-Dana/internal/handler"
	"github.com/samikd35/RebootEarth-Dana/internal/ml"
	"github.com/samikd35/RebootEarth-Dana/internal/repository"
	"github.com/samikd35/RebootEarth-Dana/internal/resolver"
	"github.com/samikd35/RebootEarth-Dana/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()
	db := database.GetDB()

	// 加载模型并初始化分类引擎
	artifacts, err := ml.LoadArtifacts(cfg.ModelPath)
	if err != nil {
		log.Fatal("Failed to load model artifacts:", err)
	}
	engine, err := ml.NewEngine(artifacts)
	if err != nil {
		log.Fatal("Failed to build classification engine:", err)
	}

	// 特征源：real 需要 EMBEDDING_URL，否则回退 synthetic
	var source resolver.Source
	if cfg.FeatureSource == "real" && cfg.EmbeddingURL != "" {
		client := resolver.NewAlphaEarthClient(cfg.EmbeddingURL, cfg.EmbeddingTimeout)
		source = resolver.NewRealSource(client)
	} else {
		if cfg.FeatureSource == "real" {
			log.Println("FEATURE_SOURCE=real but EMBEDDING_URL is empty, using synthetic features")
		}
		source = resolver.NewSyntheticSource()
	}

	// 组装服务层
	memo := cache.New(cfg.CacheSize, cfg.CacheTTL)
	recommendSvc := service.NewRecommendService(resolver.New(source), engine, memo)
	batchSvc := service.NewBatchService(recommendSvc, cfg.BatchMaxConcurrency, cfg.BatchItemTimeout)
	adviceSvc := service.NewAdviceService()
	resultSvc := service.NewResultService(repository.NewResultRepository(db), adviceSvc)
	farmerSvc := service.NewFarmerService(repository.NewFarmerRepository(db))
	smsSvc := service.NewSMSService(service.LogSender{})

	handlers := api.Handlers{
		Recommend: handler.NewRecommendHandler(recommendSvc, batchSvc, resultSvc),
		Farmer:    handler.NewFarmerHandler(farmerSvc),
		Result:    handler.NewResultHandler(resultSvc, farmerSvc, smsSvc),
	}

	// 初始化路由
	router := api.SetupRouter(cfg, handlers)

	// 启动服务器
	log.Printf("Server starting on port %s (features: %s)", cfg.Port, cfg.FeatureSource)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
