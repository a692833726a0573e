package config

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// loadDBConfigByEnv reads the connection settings for one environment.
// Each environment has its own prefixed variables, e.g. DEV_DB_HOST.
func loadDBConfigByEnv(env string, db *DBConfig) error {
	var prefix string
	switch env {
	case "dev":
		prefix = "DEV_"
	case "qc":
		prefix = "QC_"
	case "prod":
		prefix = "PROD_"
	default:
		return fmt.Errorf("unknown environment: %s", env)
	}

	setString(&db.User, prefix+"DB_USER")
	setString(&db.Password, prefix+"DB_PASSWORD")
	setString(&db.Host, prefix+"DB_HOST")
	setString(&db.Port, prefix+"DB_PORT")
	setString(&db.Name, prefix+"DB_NAME")
	setString(&db.SSLMode, "DB_SSLMODE")
	setString(&db.TimeZone, "DB_TIMEZONE")

	if db.User == "" || db.Name == "" {
		return fmt.Errorf("%sDB_USER and %sDB_NAME are required", prefix, prefix)
	}
	return nil
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

// Redacted is the DSN with the password masked, safe to log.
func (c DBConfig) Redacted() string {
	return strings.Replace(c.DSN(), "password="+c.Password, "password=****", 1)
}

func ConnectDB(cfg DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB(): %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return db, nil
}
