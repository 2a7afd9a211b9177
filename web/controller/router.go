package controller

import (
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// RouterController serves the routers page: inventory, live telemetry and
// bandwidth history per access point.
type RouterController struct {
	routerService service.RouterService
}

func NewRouterController(g *gin.RouterGroup) *RouterController {
	a := &RouterController{}
	a.initRouter(g)
	return a
}

func (a *RouterController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/routers")

	g.GET("/", a.list)
	g.GET("/status/:id", a.status)
	g.GET("/bandwidth/:id", a.bandwidth)
}

func (a *RouterController) list(c *gin.Context) {
	routers, err := a.routerService.List(c.Request.Context())
	jsonObj(c, routers, err)
}

func (a *RouterController) status(c *gin.Context) {
	status, err := a.routerService.Status(c.Request.Context(), paramInt(c, "id"))
	jsonObj(c, status, err)
}

func (a *RouterController) bandwidth(c *gin.Context) {
	points, err := a.routerService.Bandwidth(c.Request.Context(), paramInt(c, "id"), queryInt(c, "hours", 24))
	jsonObj(c, points, err)
}
