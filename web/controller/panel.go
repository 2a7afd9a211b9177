package controller

import (
	"github.com/netpesa/netpesa/logger"
	"github.com/netpesa/netpesa/web/global"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/atomic"
)

// PanelController serves panel-host telemetry and the in-memory log view.
// The status is sampled on a cron tick and cached behind an atomic pointer,
// so the page polling it never waits on gopsutil and never races the
// sampler goroutine.
type PanelController struct {
	panelService service.PanelService

	lastStatus atomic.Pointer[service.PanelStatus]
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	a.startTask()
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")

	g.POST("/status", a.status)
	g.POST("/logs/:count", a.getLogs)
}

func (a *PanelController) startTask() {
	webServer := global.GetWebServer()
	c := webServer.GetCron()
	c.AddFunc("@every 2s", a.refreshStatus)
}

func (a *PanelController) refreshStatus() {
	a.lastStatus.Store(a.panelService.GetStatus())
}

func (a *PanelController) status(c *gin.Context) {
	status := a.lastStatus.Load()
	if status == nil {
		a.refreshStatus()
		status = a.lastStatus.Load()
	}
	jsonObj(c, status, nil)
}

func (a *PanelController) getLogs(c *gin.Context) {
	count := paramInt(c, "count")
	if count <= 0 {
		count = 50
	}
	level := c.DefaultPostForm("level", "info")
	logs := logger.GetLogs(count, level)
	jsonObj(c, logs, nil)
}
