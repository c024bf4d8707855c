package repositories

import (
	"context"
	"errors"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"gorm.io/gorm"
)

type Clients struct {
	db *gorm.DB
}

func NewClientsRepository(db *gorm.DB) *Clients {
	return &Clients{db: db}
}

func (c Clients) Get(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := c.db.WithContext(ctx).Order("id").Find(&clients).Error
	return clients, err
}

func (c Clients) GetByID(ctx context.Context, id int) (*models.Client, error) {
	var client models.Client
	err := c.db.WithContext(ctx).First(&client, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

func (c Clients) Create(ctx context.Context, client *models.Client) error {
	return c.db.WithContext(ctx).Create(client).Error
}

func (c Clients) Update(ctx context.Context, client *models.Client) error {
	return c.db.WithContext(ctx).Save(client).Error
}

func (c Clients) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&models.Client{}).Count(&count).Error
	return count, err
}
