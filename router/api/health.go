package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthRes liveness answer
type HealthRes struct {
	Status string `json:"status"`  //
	ApiUrl string `json:"api_url"` //Backend serving the collections
}

// Health liveness API
func Health(e *gin.Engine, apiUrl string) {
	e.GET("/healthz", func(c *gin.Context) {
		health(c, apiUrl)
	})
}

// @Tags         system
// @Summary      Liveness probe
// @Produce      json
// @Success      200  {object}  HealthRes
// @Router       /healthz [get]
func health(c *gin.Context, apiUrl string) {
	c.JSON(http.StatusOK, HealthRes{Status: "ok", ApiUrl: apiUrl})
}
