package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/service"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

// PublicHandler serves published tours without authentication
type PublicHandler struct {
	tours *service.TourService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(tours *service.TourService) *PublicHandler {
	return &PublicHandler{tours: tours}
}

// ListTours handles GET /api/public/tours
func (h *PublicHandler) ListTours(c *gin.Context) {
	var filter models.PublicTourFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.tours.ListPublic(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetTour handles GET /api/public/tours/:id
func (h *PublicHandler) GetTour(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.tours.Published(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tour)
}
