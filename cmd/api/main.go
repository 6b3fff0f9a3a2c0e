package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/topcardetailing/booking-api/internal/config"
	dbpkg "github.com/topcardetailing/booking-api/internal/db"
	"github.com/topcardetailing/booking-api/internal/middleware"
	"github.com/topcardetailing/booking-api/internal/routes"
)

func main() {

	cfg := config.Load()
	logger := newLogger(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg, logger)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, logger)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var zcfg zap.Config

	if env == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zcfg.OutputPaths = []string{"stdout"}

	logger, err := zcfg.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}

	return logger
}
