package repositories

import (
	"context"
	"errors"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"gorm.io/gorm"
)

type Projects struct {
	db *gorm.DB
}

func NewProjectsRepository(db *gorm.DB) *Projects {
	return &Projects{db: db}
}

func (p Projects) Get(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := p.db.WithContext(ctx).Preload("Cliente").Order("id").Find(&projects).Error
	return projects, err
}

func (p Projects) GetActive(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := p.db.WithContext(ctx).
		Preload("Cliente").
		Where("estado = ?", models.ProjectActive).
		Order("id").
		Find(&projects).Error
	return projects, err
}

func (p Projects) GetByID(ctx context.Context, id int) (*models.Project, error) {
	var project models.Project
	err := p.db.WithContext(ctx).Preload("Cliente").First(&project, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (p Projects) Create(ctx context.Context, project *models.Project) error {
	return p.db.WithContext(ctx).Create(project).Error
}

func (p Projects) Update(ctx context.Context, project *models.Project) error {
	return p.db.WithContext(ctx).Save(project).Error
}

func (p Projects) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("estado = ?", models.ProjectActive).
		Count(&count).Error
	return count, err
}
