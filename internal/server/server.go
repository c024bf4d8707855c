package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/repositories"
	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/services"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Ingestor   *services.CVIngestor
	Finder     *services.CandidateFinder
	Rotations  *services.RotationsReporter
	Candidates *repositories.Candidates
	Projects   *repositories.Projects
	Clients    *repositories.Clients
}

type Server struct {
	engine *gin.Engine
	http   *http.Server
}

func NewServer(deps Dependencies) *Server {

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	registerCVRoutes(api, deps.Ingestor)
	registerSearchRoutes(api, deps.Finder)
	registerPersonalRoutes(api, deps.Candidates)
	registerProjectRoutes(api, deps.Projects)
	registerClientRoutes(api, deps.Clients)
	registerDashboardRoutes(api, deps.Candidates, deps.Projects, deps.Clients, deps.Rotations)

	return &Server{engine: engine}
}

func (s *Server) Run(port int) error {
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.engine,
	}

	err := s.http.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
