package server

import (
	"net/http"
	"strings"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/logger"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type searchHandler struct {
	finder *services.CandidateFinder
}

func registerSearchRoutes(group *gin.RouterGroup, finder *services.CandidateFinder) {
	h := &searchHandler{finder: finder}
	group.POST("/candidates/search", h.search)
}

func (h *searchHandler) search(c *gin.Context) {

	var req struct {
		Descripcion string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Descripcion) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "descripcion is required"})
		return
	}

	ranked, err := h.finder.Find(c.Request.Context(), req.Descripcion)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).Errorf("candidate search failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "candidate ranking is unavailable, try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      len(ranked),
		"candidatos": ranked,
	})
}
