package http_pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
	http_requestid_middleware "github.com/moviehistory/core/internal/delivery/http/middleware/requestid"
)

// Controller serves the informational endpoints outside the tracking
// core: about, contact and the diagnostic error page.
type Controller struct{}

func New() *Controller {
	return &Controller{}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	pages := router.Group("/pages")
	pages.GET("/about", c.about)
	pages.GET("/contact", c.contact)

	router.GET("/error", c.errorPage)
}

func (c *Controller) about(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Track movies you have watched and recommend them to other users.",
	})
}

func (c *Controller) contact(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Your contact page.",
	})
}

// errorPage exposes the correlation id of the current request so a
// failure can be reported to an operator.
func (c *Controller) errorPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"request_id": http_requestid_middleware.FromContext(ctx),
	})
}
