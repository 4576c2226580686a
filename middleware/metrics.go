package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace/metrics"
)

// Metrics records every request under its route pattern. A panic is counted as a 500 and passed on.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()
		defer func() {
			status := c.Writer.Status()
			r := recover()
			if r != nil {
				status = http.StatusInternalServerError
			}
			path := c.FullPath()
			if path == "" {
				path = "unmatched"
			}
			m.RequestFinished(c.Request.Method, path, strconv.Itoa(status), time.Since(start))
			if r != nil {
				panic(r)
			}
		}()
		c.Next()
	}
}
