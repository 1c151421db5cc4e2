package di

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/cmd/api/infrastructure"
	"user-crud-service/internal/adapter/db/postgres"
	"user-crud-service/internal/adapter/eol"
	ginhandler "user-crud-service/internal/adapter/gin/handler"
	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	DB              *gorm.DB
	UserUC          user.Usecase
	UserHandler     *ginhandler.UserHandler
	VersionsHandler *ginhandler.VersionsHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := postgres.NewUserRepoPG(db, l)
	userUC := user.New(repo, user.JSONCodec{}, l)

	eolClient := eol.NewClient(cfg.API.SpringBootEOLURL, l)

	userHandler := ginhandler.NewUserHandler(userUC, l)
	versionsHandler := ginhandler.NewVersionsHandler(eolClient, l)

	return &Container{
		Config:          cfg,
		Logger:          l,
		DB:              db,
		UserUC:          userUC,
		UserHandler:     userHandler,
		VersionsHandler: versionsHandler,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
