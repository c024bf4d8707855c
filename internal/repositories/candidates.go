package repositories

import (
	"context"
	"errors"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"gorm.io/gorm"
)

type Candidates struct {
	db *gorm.DB
}

func NewCandidatesRepository(db *gorm.DB) *Candidates {
	return &Candidates{db: db}
}

func (c Candidates) GetByRut(ctx context.Context, rut string) (*models.Candidate, error) {
	var candidate models.Candidate
	err := c.db.WithContext(ctx).Where("rut = ?", rut).First(&candidate).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

func (c Candidates) GetByID(ctx context.Context, id int) (*models.Candidate, error) {
	var candidate models.Candidate
	err := c.db.WithContext(ctx).First(&candidate, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &candidate, nil
}

// Upsert inserts the candidate or, when one with the same rut already exists,
// refreshes its ingestion fields. An update marks the candidate active and not
// hired again but leaves the quality score and project assignment untouched.
// Returns true when a new record was created.
func (c Candidates) Upsert(ctx context.Context, candidate *models.Candidate) (bool, error) {

	existing, err := c.GetByRut(ctx, candidate.Rut)
	if err != nil {
		return false, err
	}

	if existing == nil {
		return true, c.db.WithContext(ctx).Create(candidate).Error
	}

	updates := map[string]any{
		"nombre":            candidate.Nombre,
		"apellido":          candidate.Apellido,
		"telefono_personal": candidate.TelefonoPersonal,
		"correo_personal":   candidate.CorreoPersonal,
		"carrera_estudios":  candidate.CarreraEstudios,
		"experiencia":       candidate.Experiencia,
		"anos_experiencia":  candidate.AnosExperiencia,
		"certificaciones":   candidate.Certificaciones,
		"otros":             candidate.Otros,
		"resumen_ia":        candidate.ResumenIA,
		"activo":            true,
		"contratado":        false,
	}
	// A re-ingestion without a fresh upload must not erase the stored link.
	if candidate.CvURL != nil {
		updates["cv_url"] = candidate.CvURL
	}

	err = c.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("id = ?", existing.ID).
		Updates(updates).Error
	if err != nil {
		return false, err
	}

	candidate.ID = existing.ID
	candidate.PuntuacionCalidad = existing.PuntuacionCalidad
	candidate.ProyectoID = existing.ProyectoID
	if candidate.CvURL == nil {
		candidate.CvURL = existing.CvURL
	}
	return false, nil
}

// GetAvailable returns candidates that are active and not hired, in insertion
// order.
func (c Candidates) GetAvailable(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := c.db.WithContext(ctx).
		Where("activo = ? AND contratado = ?", true, false).
		Order("id").
		Find(&candidates).Error
	return candidates, err
}

func (c Candidates) Get(ctx context.Context, activo *bool, contratado *bool) ([]models.Candidate, error) {
	query := c.db.WithContext(ctx).Order("id")
	if activo != nil {
		query = query.Where("activo = ?", *activo)
	}
	if contratado != nil {
		query = query.Where("contratado = ?", *contratado)
	}

	var candidates []models.Candidate
	err := query.Find(&candidates).Error
	return candidates, err
}

func (c Candidates) GetByProjectIDs(ctx context.Context, projectIDs []int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := c.db.WithContext(ctx).
		Where("proyecto_id IN ? AND activo = ?", projectIDs, true).
		Order("id").
		Find(&candidates).Error
	return candidates, err
}

func (c Candidates) Update(ctx context.Context, candidate *models.Candidate) error {
	return c.db.WithContext(ctx).Save(candidate).Error
}

func (c Candidates) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("activo = ?", true).
		Count(&count).Error
	return count, err
}
