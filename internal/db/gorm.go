package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/bookmarker-back/internal/config"
)

type (
	GormForkedModel struct {
		ID        string `gorm:"primarykey;type:varchar(36)"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Bookmark struct {
		GormForkedModel
		Title        string  `gorm:"type:varchar(280);not null"`
		Description  *string `gorm:"type:varchar(280)"`
		WebsiteURL   string  `gorm:"column:website_url;type:varchar(1024);not null"`
		Archived     bool    `gorm:"not null;default:false;index"`
		Pinned       bool    `gorm:"not null;default:false"`
		VisitedAt    *time.Time
		VisitedCount int64         `gorm:"not null;default:0"`
		Tags         []BookmarkTag `gorm:"constraint:OnDelete:CASCADE"`
	}

	Tag struct {
		GormForkedModel
		Title string `gorm:"not null;uniqueIndex"`
	}

	// BookmarkTag links one bookmark to one tag. Deleting a bookmark drops its
	// links, never the tag.
	BookmarkTag struct {
		BookmarkID string `gorm:"primaryKey;type:varchar(36)"`
		TagID      string `gorm:"primaryKey;type:varchar(36);index"`
		Tag        Tag    `gorm:"foreignKey:TagID"`
	}
)

func (m *GormForkedModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func NewGormClient(lc fx.Lifecycle, cfg *config.Config, l *zap.SugaredLogger) (*gorm.DB, error) {
	newLogger := logger.New(zap.NewStdLog(l.Desugar()), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLogLevel(cfg.LogLevel),
		IgnoreRecordNotFoundError: true,
	})

	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DBDriver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "get sql db")
		}
		// every new connection to :memory: is a new, empty database
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			l.Info("Closing database connection.")
			return sqlDB.Close()
		},
	})

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Bookmark{}); err != nil {
		return errors.Wrap(err, "migrate bookmark")
	}
	if err := db.AutoMigrate(&Tag{}); err != nil {
		return errors.Wrap(err, "migrate tag")
	}
	if err := db.AutoMigrate(&BookmarkTag{}); err != nil {
		return errors.Wrap(err, "migrate bookmark tag")
	}
	return nil
}

func newDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.DBName), nil
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		connConfig, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, errors.Wrap(err, "parse postgres dsn")
		}
		return postgres.New(postgres.Config{
			Conn: stdlib.OpenDB(*connConfig),
		}), nil
	default:
		return nil, errors.New(fmt.Sprintf("unsupported db driver: %s", cfg.DBDriver))
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	default:
		return logger.Warn
	}
}
