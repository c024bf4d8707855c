package repositories

import (
	"fmt"

	"github.com/TPFingenieriaUAI/ProyectoUAISantiago/internal/domain/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(models.Client{})
	if err != nil {
		return fmt.Errorf("failed to migrate Client entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Project{})
	if err != nil {
		return fmt.Errorf("failed to migrate Project entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Candidate{})
	if err != nil {
		return fmt.Errorf("failed to migrate Candidate entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
