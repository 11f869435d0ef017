package system

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDatabase connects to the configured store
func OpenDatabase(cfg DBConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}

	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=10s&readTimeout=30s&writeTimeout=30s",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		db, err := gorm.Open(mysql.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mysql %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		Info("Database connected: mysql %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
		return db, nil

	default:
		db, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Path, err)
		}
		Info("Database connected: %s", cfg.Path)

		// WAL avoids "database is locked" while the export reads and the console writes
		if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
			Warn("Failed to enable WAL mode: %v", err)
		}
		return db, nil
	}
}
