package page

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace/metrics"
	"marketplace/middleware"
	"marketplace/view"
)

// Collections serves the collections fragment. Every request mounts a fresh component
// whose fetch lives as long as the request.
func Collections(e *gin.Engine, fetcher view.CollectionsFetcher, logger *zap.Logger, m *metrics.Metrics, limit gin.HandlerFunc) {
	e.GET(view.CollectionsFragment, limit, func(c *gin.Context) {
		state, err := view.Load(c.Request.Context(), fetcher,
			logger.With(zap.String("request_id", middleware.GetRequestID(c))), m)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusGatewayTimeout)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.HTML(http.StatusOK, view.TemplateCollections, view.NewCollectionsSection(state))
	})
}
