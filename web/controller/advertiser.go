package controller

import (
	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// AdvertiserController lists and registers ad-placing businesses.
type AdvertiserController struct {
	advertiserService service.AdvertiserService
}

func NewAdvertiserController(g *gin.RouterGroup) *AdvertiserController {
	a := &AdvertiserController{}
	a.initRouter(g)
	return a
}

func (a *AdvertiserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/advertisers")

	g.GET("/", a.list)
	g.POST("/add", a.add)
}

func (a *AdvertiserController) list(c *gin.Context) {
	advertisers, err := a.advertiserService.List(c.Request.Context())
	jsonObj(c, advertisers, err)
}

func (a *AdvertiserController) add(c *gin.Context) {
	var input billing.AdvertiserInput
	if err := c.ShouldBind(&input); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	advertiser, err := a.advertiserService.Create(c.Request.Context(), input)
	jsonMsgObj(c, I18nWeb(c, "pages.advertisers.toasts.created"), advertiser, err)
}
