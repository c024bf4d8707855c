package server

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type cvHandler struct {
	ingestor *services.CVIngestor
}

func registerCVRoutes(group *gin.RouterGroup, ingestor *services.CVIngestor) {
	h := &cvHandler{ingestor: ingestor}
	group.POST("/cvs", h.ingest)
	group.POST("/cvs/bulk", h.ingestBulk)
}

func (h *cvHandler) ingest(c *gin.Context) {

	header, err := c.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cv file is required"})
		return
	}

	file, err := readUpload(header)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}

	result, err := h.ingestor.Ingest(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not extract name, surname and RUT from the CV"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"candidato": result.Candidate,
		"creado":    result.Created,
	})
}

func (h *cvHandler) ingestBulk(c *gin.Context) {

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	headers := form.File["cvs"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one cv file is required"})
		return
	}

	files := make([]services.FileUpload, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file " + header.Filename})
			return
		}
		files = append(files, file)
	}

	c.JSON(http.StatusOK, h.ingestor.IngestAll(c.Request.Context(), files))
}

func readUpload(header *multipart.FileHeader) (services.FileUpload, error) {

	file, err := header.Open()
	if err != nil {
		return services.FileUpload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return services.FileUpload{}, err
	}
	return services.FileUpload{Name: header.Filename, Data: data}, nil
}
