package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/middleware"
	"github.com/jengzang/tours-backend-go/internal/models"
	"github.com/jengzang/tours-backend-go/internal/service"
	"github.com/jengzang/tours-backend-go/pkg/response"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	service *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects handles GET /api/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.service.Create(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

// GetProject handles GET /api/projects/:id
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.service.Get(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}
