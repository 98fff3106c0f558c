package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/dogvet-api/internal/config"
	"github.com/BruksfildServices01/dogvet-api/internal/models"
)

// índices únicos parciais: só registros ativos disputam cpf/CRMV
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_tutors_national_id_active
        ON tutors (national_id) WHERE active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_veterinarians_license_active
        ON veterinarians (license_number) WHERE active`,
}

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Credential{},
		&models.Clinic{},
		&models.Tutor{},
		&models.Veterinarian{},
		&models.Animal{},
		&models.Visit{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
