package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
)

func (s *Server) QuoteProperty(c *gin.Context) {
	var req pricingdomain.PropertyQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.QuoteProperty(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordQuote(string(resp.Category))
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) QuoteVehicle(c *gin.Context) {
	var req pricingdomain.VehicleQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.QuoteVehicle(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.RecordQuote(string(resp.Category))
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
