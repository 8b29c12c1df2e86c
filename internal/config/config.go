package config

import (
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// 推荐引擎配置
	ModelPath        string
	FeatureSource    string // "synthetic" 或 "real"
	EmbeddingURL     string
	EmbeddingTimeout time.Duration

	// 缓存配置
	CacheSize int
	CacheTTL  time.Duration // 0 表示不过期

	// 批量请求配置
	BatchMaxConcurrency int
	BatchItemTimeout    time.Duration
}

// Load 加载配置
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/recommendations.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	featureSource := os.Getenv("FEATURE_SOURCE")
	if featureSource != "real" {
		featureSource = "synthetic"
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,

		ModelPath:        os.Getenv("MODEL_PATH"),
		FeatureSource:    featureSource,
		EmbeddingURL:     os.Getenv("EMBEDDING_URL"),
		EmbeddingTimeout: envDuration("EMBEDDING_TIMEOUT", 5*time.Second),

		CacheSize: envInt("CACHE_SIZE", 1000),
		CacheTTL:  envDuration("CACHE_TTL", 0),

		BatchMaxConcurrency: envInt("BATCH_MAX_CONCURRENCY", 10),
		BatchItemTimeout:    envDuration("BATCH_ITEM_TIMEOUT", 30*time.Second),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}
