package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/gin-gonic/gin"
)

type personalHandler struct {
	candidates *repositories.Candidates
}

func registerPersonalRoutes(group *gin.RouterGroup, candidates *repositories.Candidates) {
	h := &personalHandler{candidates: candidates}
	group.GET("/personal", h.list)
	group.GET("/personal/:id", h.get)
	group.PUT("/personal/:id", h.update)
}

func (h *personalHandler) list(c *gin.Context) {

	activo, err := parseBoolQuery(c, "activo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activo must be true or false"})
		return
	}
	contratado, err := parseBoolQuery(c, "contratado")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contratado must be true or false"})
		return
	}

	candidates, err := h.candidates.Get(c.Request.Context(), activo, contratado)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get personnel"})
		return
	}

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		candidates = filterCandidates(candidates, query)
	}

	c.JSON(http.StatusOK, gin.H{"total": len(candidates), "personal": candidates})
}

func (h *personalHandler) get(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	candidate, err := h.candidates.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get candidate"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

type updateCandidateRequest struct {
	Nombre            *string `json:"nombre"`
	Apellido          *string `json:"apellido"`
	TelefonoPersonal  *string `json:"telefono_personal"`
	CorreoPersonal    *string `json:"correo_personal"`
	CarreraEstudios   *string `json:"carrera_estudios"`
	Experiencia       *string `json:"experiencia"`
	AnosExperiencia   *int    `json:"anos_experiencia"`
	Certificaciones   *string `json:"certificaciones"`
	Otros             *string `json:"otros"`
	PuntuacionCalidad *int    `json:"puntuacion_calidad"`
	ProyectoID        *int    `json:"proyecto_id"`
	Activo            *bool   `json:"activo"`
	Contratado        *bool   `json:"contratado"`
}

func (h *personalHandler) update(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateCandidateRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PuntuacionCalidad != nil && (*req.PuntuacionCalidad < 1 || *req.PuntuacionCalidad > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "puntuacion_calidad must be between 1 and 5"})
		return
	}

	candidate, err := h.candidates.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get candidate"})
		return
	}
	if candidate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "candidate not found"})
		return
	}

	applyCandidateUpdate(candidate, req)

	if err = h.candidates.Update(c.Request.Context(), candidate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update candidate"})
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func applyCandidateUpdate(candidate *models.Candidate, req updateCandidateRequest) {

	if req.Nombre != nil {
		candidate.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		candidate.Apellido = *req.Apellido
	}
	if req.TelefonoPersonal != nil {
		candidate.TelefonoPersonal = req.TelefonoPersonal
	}
	if req.CorreoPersonal != nil {
		candidate.CorreoPersonal = req.CorreoPersonal
	}
	if req.CarreraEstudios != nil {
		candidate.CarreraEstudios = req.CarreraEstudios
	}
	if req.Experiencia != nil {
		candidate.Experiencia = req.Experiencia
	}
	if req.AnosExperiencia != nil {
		candidate.AnosExperiencia = req.AnosExperiencia
	}
	if req.Certificaciones != nil {
		candidate.Certificaciones = req.Certificaciones
	}
	if req.Otros != nil {
		candidate.Otros = req.Otros
	}
	if req.PuntuacionCalidad != nil {
		candidate.PuntuacionCalidad = req.PuntuacionCalidad
	}
	if req.ProyectoID != nil {
		candidate.ProyectoID = req.ProyectoID
	}
	if req.Activo != nil {
		candidate.Activo = *req.Activo
	}
	if req.Contratado != nil {
		candidate.Contratado = *req.Contratado
	}
}

func filterCandidates(candidates []models.Candidate, query string) []models.Candidate {

	query = strings.ToLower(query)
	var filtered []models.Candidate
	for _, candidate := range candidates {
		haystack := strings.ToLower(candidate.FullName() + " " + candidate.Rut)
		if candidate.CarreraEstudios != nil {
			haystack += " " + strings.ToLower(*candidate.CarreraEstudios)
		}
		if strings.Contains(haystack, query) {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}

func parseBoolQuery(c *gin.Context, name string) (*bool, error) {

	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
