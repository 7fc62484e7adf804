package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storyhub-backend/models/publications"
	"storyhub-backend/models/story"
	"storyhub-backend/models/users"
)

var DB *gorm.DB

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"storyhub"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// InitDB opens the database connection and stores it in DB.
// TranslateError is enabled so uniqueness conflicts surface as
// gorm.ErrDuplicatedKey regardless of the driver.
func InitDB() error {
	var cfg DBConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	DB = db
	logrus.WithFields(logrus.Fields{"host": cfg.Host, "dbname": cfg.Name}).
		Info("database connection established")
	return nil
}

// AutoMigrate creates or updates the schema for every model this module owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&publications.Publication{},
		&story.Tag{},
		&story.Story{},
	)
}
