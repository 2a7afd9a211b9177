package controller

import (
	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// PlanController manages service tiers: list, create, delete.
type PlanController struct {
	planService service.PlanService
}

func NewPlanController(g *gin.RouterGroup) *PlanController {
	a := &PlanController{}
	a.initRouter(g)
	return a
}

func (a *PlanController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/plans")

	g.GET("/", a.list)
	g.POST("/add", a.add)
	g.POST("/del/:id", a.del)
}

func (a *PlanController) list(c *gin.Context) {
	plans, err := a.planService.List(c.Request.Context())
	jsonObj(c, plans, err)
}

func (a *PlanController) add(c *gin.Context) {
	var input billing.PlanInput
	if err := c.ShouldBind(&input); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	plan, err := a.planService.Create(c.Request.Context(), input)
	jsonMsgObj(c, I18nWeb(c, "pages.plans.toasts.created"), plan, err)
}

func (a *PlanController) del(c *gin.Context) {
	err := a.planService.Delete(c.Request.Context(), paramInt(c, "id"))
	jsonMsg(c, I18nWeb(c, "pages.plans.toasts.deleted"), err)
}
