package config

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resumatch/resume-matcher/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database ready")

	return db, nil
}

// migrate brings the schema up to date. Every step checks for existence
// first, so running it against an already-migrated database is a no-op.
// Databases created before the resume_path column existed get the column
// added without touching their rows.
func migrate(db *gorm.DB) error {
	m := db.Migrator()

	if !m.HasTable(&models.Evaluation{}) {
		if err := m.CreateTable(&models.Evaluation{}); err != nil {
			return fmt.Errorf("failed to create evaluations table: %w", err)
		}
		return nil
	}

	if !m.HasColumn(&models.Evaluation{}, "resume_path") {
		if err := m.AddColumn(&models.Evaluation{}, "ResumePath"); err != nil {
			return fmt.Errorf("failed to add resume_path column: %w", err)
		}
	}

	return nil
}
