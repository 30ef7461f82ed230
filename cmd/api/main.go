package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/schedula/clinic-scheduler/internal/config"
	dbpkg "github.com/schedula/clinic-scheduler/internal/db"
	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
	"github.com/schedula/clinic-scheduler/internal/logging"
	"github.com/schedula/clinic-scheduler/internal/redislock"
	"github.com/schedula/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := logging.NewLogger(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	var locker domain.Locker = domain.NopLocker{}
	if client, err := redislock.NewClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		logger.Warn("redis unavailable, booking locks disabled", zap.Error(err))
	} else {
		locker = redislock.New(client, cfg.LockTTL)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
