package controller

import (
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// APIController mounts every authenticated endpoint under /panel/api.
type APIController struct {
	BaseController

	dashboardController   *DashboardController
	customerController    *CustomerController
	planController        *PlanController
	adController          *AdController
	advertiserController  *AdvertiserController
	transactionController *TransactionController
	routerController      *RouterController
	ratingController      *RatingController
	settingController     *SettingController
	panelController       *PanelController
}

func NewAPIController(g *gin.RouterGroup, dashboardService *service.DashboardService) *APIController {
	a := &APIController{}
	a.initRouter(g, dashboardService)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup, dashboardService *service.DashboardService) {
	g = g.Group("/panel/api")
	g.Use(a.checkLogin)

	a.dashboardController = NewDashboardController(g, dashboardService)
	a.customerController = NewCustomerController(g)
	a.planController = NewPlanController(g)
	a.adController = NewAdController(g)
	a.advertiserController = NewAdvertiserController(g)
	a.transactionController = NewTransactionController(g)
	a.routerController = NewRouterController(g)
	a.ratingController = NewRatingController(g)
	a.settingController = NewSettingController(g)
	a.panelController = NewPanelController(g)
}
