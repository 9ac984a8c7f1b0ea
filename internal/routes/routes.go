package routes

import (
	"fstr_backend/internal/handlers"
	"fstr_backend/internal/logger"
	"fstr_backend/internal/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// регистрирует спецификацию Swagger
	_ "fstr_backend/docs"
)

// RegisterRoutes регистрирует все HTTP маршруты.
// basePath - префикс API ("/" по умолчанию); служебные маршруты живут в корне.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	m *metrics.Metrics,
	basePath string,
) {
	api := ginRouter.Group(basePath)
	{
		appHandlers.PerevalHandler.RegisterRoutes(api)
	}

	root := ginRouter.Group("/")
	{
		appHandlers.HealthHandler.RegisterRoutes(root)
		root.GET("/metrics", gin.WrapH(m.Handler()))
		root.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	logger.Info("HTTP routes registered", "base_path", basePath)
}
