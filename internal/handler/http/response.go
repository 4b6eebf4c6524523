package http

import "github.com/gin-gonic/gin"

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

func ValidationResponse(c *gin.Context, code int, message string, fields map[string]string) {
	c.JSON(code, gin.H{"message": message, "fields": fields})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}
