package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Swagger serves the api documentation UI.
func Swagger(c *gin.Context) error {
	ginSwagger.WrapHandler(swaggerFiles.Handler)(c)
	return nil
}
