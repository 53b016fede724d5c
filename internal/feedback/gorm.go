package feedback

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// DefaultDSN is the SQLite file used when no DSN is configured.
const DefaultDSN = "sqlite://promptcritic.db"

type feedbackRow struct {
	ID        uint      `gorm:"primaryKey"`
	Liked     bool      `gorm:"index;not null"`
	Score     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (feedbackRow) TableName() string { return "feedback_entries" }

// GormStore persists feedback through gorm.
type GormStore struct {
	db *gorm.DB
}

// Dialector picks the gorm driver from the DSN scheme:
// postgres:// or postgresql:// for Postgres, mysql:// for MySQL (the rest is
// a go-sql-driver DSN), sqlite:// or a bare path for SQLite.
func Dialector(dsn string) (gorm.Dialector, error) {
	switch {
	case dsn == "":
		return nil, fmt.Errorf("feedback.Dialector: empty DSN")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.Open(dsn), nil
	case strings.HasPrefix(dsn, "mysql://"):
		return mysql.Open(strings.TrimPrefix(dsn, "mysql://")), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), nil
	case strings.Contains(dsn, "://"):
		return nil, fmt.Errorf("feedback.Dialector: unsupported DSN scheme in %q", dsn[:strings.Index(dsn, "://")+3])
	default:
		return sqlite.Open(dsn), nil
	}
}

// OpenGorm connects to dsn and migrates the feedback table.
func OpenGorm(dsn string) (*GormStore, error) {
	dialector, err := Dialector(dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("feedback.OpenGorm: connect: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an open connection and migrates the feedback table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&feedbackRow{}); err != nil {
		return nil, fmt.Errorf("feedback.NewGormStore: migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Record(ctx context.Context, e Entry) error {
	row := feedbackRow{Liked: e.Liked, Score: e.Score, CreatedAt: e.At}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("feedback.Record: %w", err)
	}
	return nil
}

func (g *GormStore) Stats(ctx context.Context) (Stats, error) {
	var groups []struct {
		Liked bool
		N     int64
		Avg   float64
	}
	err := g.db.WithContext(ctx).
		Model(&feedbackRow{}).
		Select("liked, count(*) AS n, coalesce(avg(score), 0) AS avg").
		Group("liked").
		Scan(&groups).Error
	if err != nil {
		return Stats{}, fmt.Errorf("feedback.Stats: %w", err)
	}

	var s Stats
	for _, grp := range groups {
		if grp.Liked {
			s.Likes, s.AvgLikedScore = grp.N, grp.Avg
		} else {
			s.Dislikes, s.AvgDislikeScore = grp.N, grp.Avg
		}
	}
	return s, nil
}

func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
