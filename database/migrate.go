package database

import (
	"context"
	"fmt"

	"fstr_backend/internal/logger"
	"fstr_backend/internal/models"

	"gorm.io/gorm"
)

// Models - все таблицы хранилища в порядке зависимостей
func Models() []interface{} {
	return []interface{}{
		&models.Submitter{},
		&models.Coords{},
		&models.Pereval{},
		&models.PerevalImage{},
	}
}

// Migrate создает/обновляет схему: таблицы, уникальный индекс email,
// внешние ключи с каскадным удалением фото.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.Info("AutoMigrate completed", "tables", len(Models()))
	return nil
}
