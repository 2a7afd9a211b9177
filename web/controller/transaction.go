package controller

import (
	"github.com/netpesa/netpesa/billing"
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// TransactionController serves the M-Pesa payment views.
type TransactionController struct {
	transactionService *service.TransactionService
	settingService     service.SettingService
}

func NewTransactionController(g *gin.RouterGroup) *TransactionController {
	a := &TransactionController{
		transactionService: &service.TransactionService{},
	}
	a.initRouter(g)
	return a
}

func (a *TransactionController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/transactions")

	g.GET("/", a.list)
	g.GET("/search", a.search)
}

// list fetches one page from the upstream. A newer request with different
// filters cancels any still-running one.
func (a *TransactionController) list(c *gin.Context) {
	perPage, err := a.settingService.GetPageSize()
	if err != nil {
		perPage = 25
	}

	params := billing.TransactionParams{
		Page:    queryInt(c, "page", 1),
		PerPage: queryInt(c, "perPage", perPage),
		Status:  c.Query("status"),
		Phone:   c.Query("phone"),
	}

	txs, pg, err := a.transactionService.List(c.Request.Context(), params)
	if err != nil {
		jsonMsg(c, "transactions", err)
		return
	}
	jsonObj(c, gin.H{"transactions": txs, "pagination": pg}, nil)
}

// search narrows the last fetched page locally; no upstream call.
func (a *TransactionController) search(c *gin.Context) {
	jsonObj(c, a.transactionService.SearchLocal(c.Query("q")), nil)
}
