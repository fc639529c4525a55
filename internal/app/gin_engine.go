package app

import (
	"github.com/gin-gonic/gin"

	"sealog-webhooks/pkg/logger"
	"sealog-webhooks/pkg/metrics"
)

func NewGinEngine(l *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(metrics.GinMiddleware(), logger.CorrelationMiddleware(), l.GinBodyLogger(), gin.Recovery())
	return engine
}
