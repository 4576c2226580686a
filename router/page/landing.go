package page

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/middleware"
	"marketplace/view"
)

// Landing serves the landing page on the root paths
func Landing(e *gin.Engine) {
	e.GET(view.HomePath, landing)
	e.GET("/home", landing)
	e.NoRoute(notFound)
}

func landing(c *gin.Context) {
	c.HTML(http.StatusOK, view.TemplateLanding, view.NewLandingPage(middleware.GetRequestID(c)))
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, view.TemplateNotFound, view.NewNotFoundPage(middleware.GetRequestID(c), c.Request.URL.Path))
}
