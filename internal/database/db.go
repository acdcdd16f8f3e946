package database

import (
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/videoclub/rental/config"
	"github.com/videoclub/rental/internal/model"
)

// Open connects to the store. With DATABASE_DSN set it talks to postgres,
// otherwise it opens (creating if needed) the embedded database file.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
}

// Migrate brings the schema up to date with the entity shapes. There is no
// versioned migration mechanism; the engine reconciles the tables itself.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Copy{},
		&model.RentalLog{},
	)
}
