package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const corsAllowMethods = "GET,HEAD,PUT,POST,DELETE,PATCH"

// CORS allows cross-origin calls from the given origins. A single "*" allows
// any origin. Preflight requests are answered here with 204.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "":
			c.Writer.Header().Add("Vary", "Origin")
			if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
			}
		}

		if c.Request.Method != http.MethodOptions {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
			c.Header("Access-Control-Allow-Headers", requested)
			c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
		}
		c.Header("Access-Control-Max-Age", "600")
		c.AbortWithStatus(http.StatusNoContent)
	}
}

// Preflight exists so OPTIONS routes can be registered under a group that
// uses CORS. CORS aborts preflight requests with 204 before this runs; on
// its own it answers 204 as well.
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
