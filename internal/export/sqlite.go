package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SessionRecord is the database row of an exported session.
type SessionRecord struct {
	ID              string    `gorm:"primaryKey;size:36"`
	Date            string    `gorm:"index;size:10;not null"`
	StartedAt       time.Time `gorm:"not null"`
	StoppedAt       *time.Time
	DurationSeconds int64
	Open            bool
	ExportedAt      time.Time
}

// TableName overrides the table name used by GORM.
func (SessionRecord) TableName() string {
	return "sessions"
}

// WriteSQLite upserts rows into the database at path, creating it and the
// sessions table when missing. Rows are keyed by their session ID, so
// repeated exports update sessions in place.
func WriteSQLite(path string, rows []Row, now time.Time) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	records := make([]SessionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, SessionRecord{
			ID:              r.ID,
			Date:            r.Date,
			StartedAt:       r.Start,
			StoppedAt:       r.Stop,
			DurationSeconds: r.DurationSeconds,
			Open:            r.Open,
			ExportedAt:      now,
		})
	}
	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error; err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	return nil
}
