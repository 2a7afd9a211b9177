package controller

import (
	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// CustomerController serves the read-only subscriber views.
type CustomerController struct {
	customerService service.CustomerService
	settingService  service.SettingService
}

func NewCustomerController(g *gin.RouterGroup) *CustomerController {
	a := &CustomerController{}
	a.initRouter(g)
	return a
}

func (a *CustomerController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/customers")

	g.GET("/", a.list)
}

// list returns one server-driven page. A "q" query narrows the fetched
// page locally without another upstream round trip.
func (a *CustomerController) list(c *gin.Context) {
	perPage, err := a.settingService.GetPageSize()
	if err != nil {
		perPage = 25
	}

	params := billing.CustomerParams{
		Page:     queryInt(c, "page", 1),
		PerPage:  queryInt(c, "perPage", perPage),
		Status:   c.Query("status"),
		RouterId: queryInt(c, "routerId", 0),
	}

	customers, pg, err := a.customerService.List(c.Request.Context(), params)
	if err != nil {
		jsonMsg(c, "customers", err)
		return
	}

	if q := c.Query("q"); q != "" {
		customers = a.customerService.FilterLocal(customers, q)
	}

	jsonObj(c, gin.H{"customers": customers, "pagination": pg}, nil)
}
