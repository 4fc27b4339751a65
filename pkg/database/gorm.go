package database

import (
	"context"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type poolConfig struct {
	logLevel        logger.LogLevel
	maxIdleConns    int
	maxOpenConns    int
	connMaxLifetime time.Duration
}

type Option func(*poolConfig)

// WithLogLevel overrides the SQL log level. Redemption runs a handful of
// statements per request, so Info is only useful while debugging.
func WithLogLevel(level logger.LogLevel) Option {
	return func(c *poolConfig) {
		c.logLevel = level
	}
}

func WithPool(maxIdle, maxOpen int, lifetime time.Duration) Option {
	return func(c *poolConfig) {
		c.maxIdleConns = maxIdle
		c.maxOpenConns = maxOpen
		c.connMaxLifetime = lifetime
	}
}

func newLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

// NewGormDBFromDSN opens a postgres pool and checks it answers before returning
func NewGormDBFromDSN(dsn string, opts ...Option) (*gorm.DB, error) {
	cfg := &poolConfig{
		logLevel:        logger.Warn,
		maxIdleConns:    10,
		maxOpenConns:    50,
		connMaxLifetime: time.Hour,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger(cfg.logLevel),
		// unique violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.maxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.maxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
