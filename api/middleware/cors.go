package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS applies the configured origin allowlist with credentials, the same
// policy the service has always exposed to its frontends.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", headerRequestID},
		AllowCredentials: true,
	})
	return func(gc *gin.Context) {
		c.HandlerFunc(gc.Writer, gc.Request)
		if gc.Request.Method == http.MethodOptions &&
			gc.GetHeader("Access-Control-Request-Method") != "" {
			gc.AbortWithStatus(http.StatusNoContent)
			return
		}
		gc.Next()
	}
}
