package database

import (
	"fmt"

	"garage_admin/internal/infrastructure/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectSQL opens the gorm connection for the postgres or sqlite driver.
func ConnectSQL(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.StorageSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownStorageDriver, cfg.StorageDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.StorageDriver).Error("[database][sql] open failed")
		return nil, err
	}
	logrus.WithField("driver", cfg.StorageDriver).Info("[database][sql] connected")
	return db, nil
}
