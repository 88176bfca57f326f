package transport

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func InitRoutes(imgHandler *ImageHandler, templatesDir, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		logrus.Errorf("panic recovered: %v", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Error": "An unexpected error occurred",
		})
	}))

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.LoadHTMLGlob(filepath.Join(templatesDir, "*.html"))
	router.Static("/static", staticDir)

	router.GET("/", imgHandler.Home)
	router.POST("/upload", imgHandler.UploadImage)
	router.GET("/image/:id", imgHandler.GetImage)
	router.DELETE("/image/:id", imgHandler.DeleteImage)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "image-enhancer",
		})
	})

	return router
}
