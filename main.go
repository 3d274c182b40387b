package main

import (
	"net/http"
	"os"

	"Gin_excel_redis_asset_tool/app"
	"Gin_excel_redis_asset_tool/config"
	"Gin_excel_redis_asset_tool/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	a := app.MustNew()
	defer a.Close()

	a.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.H{"ok": true})
	})
	routes.RegisterRoutes(a)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	zap.S().Infof("listening on :%s", port)
	if err := a.Router.Run(":" + port); err != nil {
		zap.S().Fatalf("server: %v", err)
	}
}
