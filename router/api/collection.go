package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace/metrics"
	"marketplace/middleware"
	"marketplace/service"
	"marketplace/view"
)

// Collection collections view API
func Collection(e *gin.Engine, fetcher view.CollectionsFetcher, logger *zap.Logger, m *metrics.Metrics, limit gin.HandlerFunc) {
	e.GET("/view/collections", limit, func(c *gin.Context) {
		getCollections(c, fetcher, logger, m)
	})
}

// @Tags         collections
// @Summary      Collections view state
// @Description  Mounts a collections component, waits for its single fetch of the backend collections endpoint and returns the settled view state
// @Produce      json
// @Success      200  {object}  view.State
// @Failure      429  {object}  service.ErrRes
// @Failure      504  {object}  service.ErrRes
// @Router       /view/collections [get]
func getCollections(c *gin.Context, fetcher view.CollectionsFetcher, logger *zap.Logger, m *metrics.Metrics) {
	state, err := view.Load(c.Request.Context(), fetcher,
		logger.With(zap.String("request_id", middleware.GetRequestID(c))), m)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, service.ErrRes{ErrStr: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}
