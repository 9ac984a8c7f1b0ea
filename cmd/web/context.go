package main

import (
	"context"
	"fmt"

	"fstr_backend/database"
	"fstr_backend/internal/app"
	"fstr_backend/internal/config"
	"fstr_backend/internal/logger"
	"fstr_backend/internal/services"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// commandContext лениво загружает конфигурацию и открывает БД для подкоманд
type commandContext struct {
	configFlag *string
	cfg        *config.Config
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.LoadConfig(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	// stdout оставляем под вывод команд
	logger.InitWithWriter(cfg.Server.Env, cmd.ErrOrStderr())
	c.cfg = cfg
	return cfg, nil
}

// withServices открывает БД, выполняет fn и закрывает пул
func (c *commandContext) withServices(ctx context.Context, migrate bool, fn func(db *gorm.DB, container *services.ServiceContainer) error) error {
	cfg := c.cfg
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close(db)
	}()

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	return fn(db.WithContext(ctx), app.InitializeServices(cfg))
}
