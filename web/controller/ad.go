package controller

import (
	"errors"
	"net/http"

	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// AdController manages advertising inventory. Deletion is gated behind an
// explicit confirm flag so a stray click can never drop an ad.
type AdController struct {
	adService service.AdService
}

func NewAdController(g *gin.RouterGroup) *AdController {
	a := &AdController{}
	a.initRouter(g)
	return a
}

func (a *AdController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/ads")

	g.GET("/", a.list)
	g.GET("/get/:id", a.get)
	g.POST("/add", a.add)
	g.POST("/update/:id", a.update)
	g.POST("/del/:id", a.del)
}

func (a *AdController) list(c *gin.Context) {
	ads, err := a.adService.List(c.Request.Context())
	jsonObj(c, ads, err)
}

func (a *AdController) get(c *gin.Context) {
	ad, err := a.adService.Get(c.Request.Context(), paramInt(c, "id"))
	jsonObj(c, ad, err)
}

func (a *AdController) add(c *gin.Context) {
	var input billing.AdInput
	if err := c.ShouldBind(&input); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	ad, err := a.adService.Create(c.Request.Context(), input)
	jsonMsgObj(c, I18nWeb(c, "pages.ads.toasts.created"), ad, err)
}

// update submits an edited ad; only the fields that differ from the
// current upstream state are patched. An edit with no changes is a
// distinct, non-error outcome.
func (a *AdController) update(c *gin.Context) {
	var edited billing.Ad
	if err := c.ShouldBindJSON(&edited); err != nil {
		jsonMsg(c, I18nWeb(c, "pages.login.toasts.invalidFormData"), err)
		return
	}
	edited.Id = paramInt(c, "id")

	ad, err := a.adService.Update(c.Request.Context(), edited)
	if errors.Is(err, service.ErrNoChanges) {
		pureJsonMsg(c, http.StatusOK, true, I18nWeb(c, "pages.ads.toasts.noChanges"))
		return
	}
	jsonMsgObj(c, I18nWeb(c, "pages.ads.toasts.updated"), ad, err)
}

// del removes an ad, but only when the request confirms it.
func (a *AdController) del(c *gin.Context) {
	var form struct {
		Confirm bool `json:"confirm" form:"confirm"`
	}
	if err := c.ShouldBind(&form); err != nil || !form.Confirm {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.ads.toasts.confirmRequired"))
		return
	}

	err := a.adService.Delete(c.Request.Context(), paramInt(c, "id"))
	jsonMsg(c, I18nWeb(c, "pages.ads.toasts.deleted"), err)
}
