package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/middleware"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/service"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

// POIHandler handles HTTP requests for POIs
type POIHandler struct {
	service *service.POIService
}

// NewPOIHandler creates a new POI handler
func NewPOIHandler(service *service.POIService) *POIHandler {
	return &POIHandler{service: service}
}

// CreatePOI handles POST /api/pois
func (h *POIHandler) CreatePOI(c *gin.Context) {
	var req models.CreatePOIRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	poi, err := h.service.Create(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, poi)
}

// GetPOI handles GET /api/pois/:id
func (h *POIHandler) GetPOI(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	poi, err := h.service.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poi)
}

// UpdatePOI handles PATCH /api/pois/:id
func (h *POIHandler) UpdatePOI(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req models.UpdatePOIRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	poi, err := h.service.Update(c.Request.Context(), middleware.Principal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poi)
}

// DeletePOI handles DELETE /api/pois/:id
func (h *POIHandler) DeletePOI(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
