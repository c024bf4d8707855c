package server

import (
	"net/http"
	"time"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/logger"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type dashboardHandler struct {
	candidates *repositories.Candidates
	projects   *repositories.Projects
	clients    *repositories.Clients
	rotations  *services.RotationsReporter
}

func registerDashboardRoutes(group *gin.RouterGroup, candidates *repositories.Candidates,
	projects *repositories.Projects, clients *repositories.Clients, rotations *services.RotationsReporter) {
	h := &dashboardHandler{candidates: candidates, projects: projects, clients: clients, rotations: rotations}
	group.GET("/dashboard", h.dashboard)
}

func (h *dashboardHandler) dashboard(c *gin.Context) {

	ctx := c.Request.Context()

	activePersonnel, err := h.candidates.CountActive(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	activeProjects, err := h.projects.CountActive(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	totalClients, err := h.clients.Count(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	rotations, err := h.rotations.Report(ctx, time.Now())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"personal_activo":     activePersonnel,
		"proyectos_activos":   activeProjects,
		"clientes":            totalClients,
		"proximas_rotaciones": rotations,
	})
}

func (h *dashboardHandler) fail(c *gin.Context, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("dashboard query failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard"})
}
