package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/pharma-scheduler/internal/config"
	"github.com/BruksfildServices01/pharma-scheduler/internal/models"
)

// NewAuditDB opens the audit database selected by AUDIT_DB_DRIVER. It returns
// nil, nil for "none".
func NewAuditDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.AuditDBDriver {
	case "none":
		return nil, nil
	case "postgres":
		dialector = postgres.Open(cfg.DBUrl)
	case "sqlite":
		if dir := filepath.Dir(cfg.AuditSQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create audit db dir: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.AuditSQLitePath)
	default:
		return nil, fmt.Errorf("unknown audit db driver %q", cfg.AuditDBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect audit db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.AuditDBDriver == "sqlite" {
		// a single writer avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}

	log.Info().Str("driver", cfg.AuditDBDriver).Msg("audit database ready")
	return db, nil
}
