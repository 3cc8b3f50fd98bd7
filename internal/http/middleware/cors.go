package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:80",
	"http://localhost:3000",
	"http://localhost:5174",
	"http://localhost:5173",
	"http://127.0.0.1:80",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5174",
	"http://127.0.0.1:5173",
}

// CORS allows the configured origins, or the local dev origins when none are given.
// A single "*" allows any origin without credentials.
func CORS(origins ...string) gin.HandlerFunc {
	if len(origins) == 1 && origins[0] == "*" {
		return OpenCORS("GET", "POST", "OPTIONS")
	}
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: true,
	})
}

// OpenCORS is used by the public proxy endpoints, which answer any origin.
func OpenCORS(methods ...string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    methods,
		AllowHeaders:    []string{"Content-Type"},
	})
}

// RouteCORS applies the open policy to the listed paths and CORS(origins...) elsewhere.
// It runs as global middleware so preflights for unrouted OPTIONS requests are answered.
func RouteCORS(origins []string, open map[string]gin.HandlerFunc) gin.HandlerFunc {
	strict := CORS(origins...)
	return func(c *gin.Context) {
		if h, ok := open[c.Request.URL.Path]; ok {
			h(c)
			return
		}
		strict(c)
	}
}
