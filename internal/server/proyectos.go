package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/gin-gonic/gin"
)

type projectHandler struct {
	projects *repositories.Projects
}

func registerProjectRoutes(group *gin.RouterGroup, projects *repositories.Projects) {
	h := &projectHandler{projects: projects}
	group.GET("/proyectos", h.list)
	group.GET("/proyectos/:id", h.get)
	group.POST("/proyectos", h.create)
	group.PUT("/proyectos/:id", h.update)
}

type projectRequest struct {
	Nombre      string     `json:"nombre" binding:"required"`
	Descripcion *string    `json:"descripcion"`
	ClienteID   *int       `json:"cliente_id"`
	FechaInicio *time.Time `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin"`
	Estado      string     `json:"estado"`
}

func (h *projectHandler) list(c *gin.Context) {
	projects, err := h.projects.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(projects), "proyectos": projects})
}

func (h *projectHandler) get(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *projectHandler) create(c *gin.Context) {

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := models.ProjectActive
	if req.Estado != "" {
		var err error
		if state, err = models.ToProjectState(req.Estado); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	project := &models.Project{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		ClienteID:   req.ClienteID,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Estado:      state,
	}

	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *projectHandler) update(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var req projectRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project.Nombre = req.Nombre
	project.Descripcion = req.Descripcion
	project.ClienteID = req.ClienteID
	project.FechaInicio = req.FechaInicio
	project.FechaFin = req.FechaFin
	if req.Estado != "" {
		state, err := models.ToProjectState(req.Estado)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		project.Estado = state
	}

	if err = h.projects.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}
