package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"venue-radar/internal/venue_radar/model"
	"venue-radar/internal/venue_radar/rank"
	"venue-radar/internal/venue_radar/store"
)

const defaultTopN = 5

// Server is the read-only HTTP surface over the venue cache.
type Server struct {
	Log   *zap.Logger
	Store *store.Store
	Rank  *rank.Engine
}

func (s *Server) Router() *gin.Engine {
	r := gin.Default()
	r.GET("/api/trending-venues", s.listVenues)
	r.GET("/api/venues/:idx", s.venueByIndex)
	r.GET("/api/top-venues", s.topVenues) // ?n=5&category=cafe&price_tier=cheap
	r.GET("/api/venue-ratings/:id", s.venueRatings)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (s *Server) listVenues(c *gin.Context) {
	venues := s.Store.All()
	c.JSON(http.StatusOK, gin.H{"total": len(venues), "data": venues})
}

func (s *Server) venueByIndex(c *gin.Context) {
	idx, err := strconv.ParseUint(c.Param("idx"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid venue index"})
		return
	}
	v, ok := s.Store.ByIndex(idx)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "venue not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": v})
}

func (s *Server) topVenues(c *gin.Context) {
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(defaultTopN)))
	if err != nil || n <= 0 {
		n = defaultTopN
	}

	category, ok := model.ParseCategory(c.DefaultQuery("category", string(model.CategoryAll)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}
	tier, ok := model.ParsePriceTier(c.DefaultQuery("price_tier", string(model.PriceAll)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown price tier"})
		return
	}

	venues := s.Rank.TopVenues(n, nil, category, tier)
	c.JSON(http.StatusOK, gin.H{"total": len(venues), "data": venues})
}

func (s *Server) venueRatings(c *gin.Context) {
	ratings := s.Rank.VenueRatings(c.Param("id"))
	if ratings == nil {
		ratings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"total": len(ratings), "data": ratings})
}
