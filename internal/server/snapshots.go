package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pricingdomain "github.com/bric-ux/akwa-pricing/internal/pricing/domain"
	snapshotdomain "github.com/bric-ux/akwa-pricing/internal/snapshot/domain"
)

func (s *Server) RecalculateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, snapshotdomain.ErrInvalidBooking)
		return
	}

	var req snapshotdomain.RecomputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.BookingID = bookingID

	resp, err := s.snapshotSvc.Recompute(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBookingSnapshot(c *gin.Context) {
	bookingID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, snapshotdomain.ErrInvalidBooking)
		return
	}

	bookingType := pricingdomain.ServiceCategory(strings.TrimSpace(c.Query("type")))
	if bookingType == "" {
		bookingType = pricingdomain.CategoryProperty
	}

	resp, err := s.snapshotSvc.Get(c.Request.Context(), bookingID, bookingType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
