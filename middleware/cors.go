package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cors allows the pages and the JSON view to be embedded from origin ("*" for any)
func Cors(origin string) gin.HandlerFunc {
	return func(context *gin.Context) {
		context.Header("Access-Control-Allow-Origin", origin)
		context.Header("Access-Control-Allow-Headers", "Content-Type, Accept, "+RequestIDHeader)
		context.Header("Access-Control-Allow-Methods", "GET,OPTIONS")
		context.Header("Access-Control-Expose-Headers", "Content-Length, Content-Type, "+RequestIDHeader)
		if origin != "*" {
			context.Header("Vary", "Origin")
		}
		if context.Request.Method == http.MethodOptions {
			context.AbortWithStatus(http.StatusNoContent)
			return
		}
		context.Next()
	}
}
