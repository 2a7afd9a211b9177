package controller

import (
	"github.com/netpesa/netpesa/web/service"

	"github.com/gin-gonic/gin"
)

// RatingController serves customer satisfaction entries, including the
// geotagged subset for the coverage map.
type RatingController struct {
	ratingService service.RatingService
}

func NewRatingController(g *gin.RouterGroup) *RatingController {
	a := &RatingController{}
	a.initRouter(g)
	return a
}

func (a *RatingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/ratings")

	g.GET("/", a.list)
	g.GET("/map", a.mapPins)
}

// list returns ratings, optionally narrowed to one star value.
func (a *RatingController) list(c *gin.Context) {
	ratings, err := a.ratingService.List(c.Request.Context(), queryInt(c, "stars", 0))
	jsonObj(c, ratings, err)
}

// mapPins returns only the entries with coordinates.
func (a *RatingController) mapPins(c *gin.Context) {
	ratings, err := a.ratingService.List(c.Request.Context(), queryInt(c, "stars", 0))
	if err != nil {
		jsonMsg(c, "ratings", err)
		return
	}
	jsonObj(c, a.ratingService.Geotagged(ratings), nil)
}
