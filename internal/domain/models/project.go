package models

import (
	"errors"
	"time"
)

type ProjectState string

const (
	ProjectActive    ProjectState = "activo"
	ProjectCompleted ProjectState = "completado"
	ProjectPaused    ProjectState = "pausado"
	ProjectCancelled ProjectState = "cancelado"
)

func ToProjectState(s string) (ProjectState, error) {
	switch s {
	case string(ProjectActive):
		return ProjectActive, nil
	case string(ProjectCompleted):
		return ProjectCompleted, nil
	case string(ProjectPaused):
		return ProjectPaused, nil
	case string(ProjectCancelled):
		return ProjectCancelled, nil
	default:
		return "", errors.New("invalid project state")
	}
}

type Project struct {
	ID          int          `json:"id" gorm:"primaryKey"`
	Nombre      string       `json:"nombre"`
	Descripcion *string      `json:"descripcion"`
	ClienteID   *int         `json:"cliente_id"`
	Cliente     *Client      `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`
	FechaInicio *time.Time   `json:"fecha_inicio"`
	FechaFin    *time.Time   `json:"fecha_fin"`
	Estado      ProjectState `json:"estado"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Project) TableName() string {
	return "proyectos"
}

// DaysUntilEnd returns the whole days between now and the project end date.
// The second return value is false when no end date is set.
func (p *Project) DaysUntilEnd(now time.Time) (int, bool) {
	if p.FechaFin == nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := time.Date(p.FechaFin.Year(), p.FechaFin.Month(), p.FechaFin.Day(), 0, 0, 0, 0, now.Location())
	return int(end.Sub(today).Hours() / 24), true
}
