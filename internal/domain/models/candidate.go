package models

import (
	"strings"
	"time"
)

// Candidate is one person eligible for project assignment. Records are never
// hard-deleted: visibility is controlled via the Activo flag.
type Candidate struct {
	ID                int     `json:"id" gorm:"primaryKey"`
	Rut               string  `json:"rut" gorm:"uniqueIndex;size:8"`
	Nombre            string  `json:"nombre"`
	Apellido          string  `json:"apellido"`
	TelefonoPersonal  *string `json:"telefono_personal"`
	CorreoPersonal    *string `json:"correo_personal"`
	CarreraEstudios   *string `json:"carrera_estudios"`
	Experiencia       *string `json:"experiencia"`
	AnosExperiencia   *int    `json:"anos_experiencia"`
	Certificaciones   *string `json:"certificaciones"`
	Otros             *string `json:"otros"`
	ResumenIA         *string `json:"resumen_ia" gorm:"column:resumen_ia"`
	PuntuacionCalidad *int    `json:"puntuacion_calidad"`
	Activo            bool    `json:"activo"`
	Contratado        bool    `json:"contratado"`
	ProyectoID        *int    `json:"proyecto_id"`
	CvURL             *string `json:"cv_url" gorm:"column:cv_url"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Candidate) TableName() string {
	return "personal"
}

func (c *Candidate) FullName() string {
	return strings.TrimSpace(c.Nombre + " " + c.Apellido)
}

// IsAvailable reports whether the candidate can be offered to a new project.
func (c *Candidate) IsAvailable() bool {
	return c.Activo && !c.Contratado
}
