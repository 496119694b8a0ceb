package database

import (
	"fmt"
	"time"

	"github.com/fadilmartias/resume-analyzer/internal/config"
	"github.com/fadilmartias/resume-analyzer/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func DSN(cfg *config.DBConfig) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)
}

// Connect opens the Postgres pool sized for the current environment.
func Connect(dbConfig *config.DBConfig, appConfig *config.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if appConfig.IsProduction() {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(DSN(dbConfig)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("could not get database instance: %w", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if log != nil {
		log.Info("database connected", zap.String("host", dbConfig.Host), zap.String("db", dbConfig.Name))
	}
	return db, nil
}

// Migrate creates or updates the user_data and user_feedback tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.AnalysisRecord{}, &model.Feedback{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
