package controller

import (
	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the aggregate dashboard: polled router
// telemetry, bandwidth history, top users and the on-demand analytics
// report.
type DashboardController struct {
	dashboardService *service.DashboardService
	routerService    service.RouterService
}

func NewDashboardController(g *gin.RouterGroup, dashboardService *service.DashboardService) *DashboardController {
	a := &DashboardController{dashboardService: dashboardService}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/dashboard")

	g.GET("/", a.snapshot)
	g.GET("/analytics", a.analytics)
	g.GET("/routers", a.routers)
	g.POST("/router", a.setRouter)
	g.POST("/filter", a.setFilter)
	g.POST("/refresh", a.refresh)
}

// snapshot returns the cached state of every polled source.
func (a *DashboardController) snapshot(c *gin.Context) {
	jsonObj(c, a.dashboardService.Snapshot(), nil)
}

// analytics returns the report for the current filter window.
func (a *DashboardController) analytics(c *gin.Context) {
	report, err := a.dashboardService.Analytics(c.Request.Context())
	jsonObj(c, report, err)
}

// routers lists the routers available for the dashboard selector.
func (a *DashboardController) routers(c *gin.Context) {
	routers, err := a.routerService.List(c.Request.Context())
	jsonObj(c, routers, err)
}

// setRouter switches the selected router and refetches every source.
func (a *DashboardController) setRouter(c *gin.Context) {
	var form struct {
		RouterId int `json:"routerId" form:"routerId"`
	}
	if err := c.ShouldBind(&form); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	a.dashboardService.SetRouterId(c.Request.Context(), form.RouterId)
	jsonObj(c, a.dashboardService.Snapshot(), nil)
}

// setFilter changes the analytics date window.
func (a *DashboardController) setFilter(c *gin.Context) {
	var filter billing.DateFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	if err := a.dashboardService.SetFilter(filter); err != nil {
		jsonMsg(c, "filter", err)
		return
	}
	report, err := a.dashboardService.Analytics(c.Request.Context())
	jsonObj(c, report, err)
}

// refresh forces every source to refetch now, analytics included.
func (a *DashboardController) refresh(c *gin.Context) {
	a.dashboardService.RefreshAll(c.Request.Context())
	jsonObj(c, a.dashboardService.Snapshot(), nil)
}
