package server

import (
	"net/http"
	"strconv"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/gin-gonic/gin"
)

type clientHandler struct {
	clients *repositories.Clients
}

func registerClientRoutes(group *gin.RouterGroup, clients *repositories.Clients) {
	h := &clientHandler{clients: clients}
	group.GET("/clientes", h.list)
	group.GET("/clientes/:id", h.get)
	group.POST("/clientes", h.create)
	group.PUT("/clientes/:id", h.update)
}

type clientRequest struct {
	Nombre    string  `json:"nombre" binding:"required"`
	Rut       *string `json:"rut"`
	Correo    *string `json:"correo"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

func (h *clientHandler) list(c *gin.Context) {
	clients, err := h.clients.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get clients"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(clients), "clientes": clients})
}

func (h *clientHandler) get(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *clientHandler) create(c *gin.Context) {

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{
		Nombre:    req.Nombre,
		Rut:       req.Rut,
		Correo:    req.Correo,
		Telefono:  req.Telefono,
		Direccion: req.Direccion,
	}

	if err := h.clients.Create(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *clientHandler) update(c *gin.Context) {

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	client, err := h.clients.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get client"})
		return
	}
	if client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	var req clientRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client.Nombre = req.Nombre
	client.Rut = req.Rut
	client.Correo = req.Correo
	client.Telefono = req.Telefono
	client.Direccion = req.Direccion

	if err = h.clients.Update(c.Request.Context(), client); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update client"})
		return
	}

	c.JSON(http.StatusOK, client)
}
