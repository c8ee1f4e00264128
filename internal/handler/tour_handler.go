package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/middleware"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/service"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

// TourHandler handles HTTP requests for tours
type TourHandler struct {
	tours *service.TourService
	pois  *service.POIService
}

// NewTourHandler creates a new tour handler
func NewTourHandler(tours *service.TourService, pois *service.POIService) *TourHandler {
	return &TourHandler{tours: tours, pois: pois}
}

// ListTours handles GET /api/tours
func (h *TourHandler) ListTours(c *gin.Context) {
	var filter models.TourFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, apperr.Validation("Invalid query parameters: %v", err))
		return
	}

	result, err := h.tours.List(c.Request.Context(), middleware.Principal(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateTour handles POST /api/tours
func (h *TourHandler) CreateTour(c *gin.Context) {
	var req models.CreateTourRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.tours.Create(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tour)
}

// GetTour handles GET /api/tours/:id
func (h *TourHandler) GetTour(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.tours.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tour)
}

// UpdateTour handles PATCH /api/tours/:id
func (h *TourHandler) UpdateTour(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdateTourRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	tour, err := h.tours.Update(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tour)
}

// ReorderPOIs handles PUT /api/tours/:id/pois/order
func (h *TourHandler) ReorderPOIs(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.ReorderRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	orders, err := h.pois.Reorder(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, models.ReorderResponse{TourID: id, POIs: orders})
}

// DeleteTour handles DELETE /api/tours/:id
func (h *TourHandler) DeleteTour(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.tours.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
