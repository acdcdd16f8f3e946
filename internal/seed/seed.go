package seed

import (
	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/service/domain"
)

// Seed populates an empty store with the initial accounts and catalog:
// an admin, a regular user, one movie and one available copy of it.
// It only runs when no users exist yet.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := domain.HashPassword("root")
	if err != nil {
		return err
	}
	userHash, err := domain.HashPassword("1234")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := model.User{
			Username:       "admin1",
			HashedPassword: adminHash,
			Admin:          true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		user := model.User{
			Username:       "user1",
			HashedPassword: userHash,
			Admin:          false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		movie := model.Movie{
			Title:       "Inception",
			Genre:       "Ciencia Ficción",
			Director:    "Christopher Nolan",
			Year:        2010,
			Description: "Un ladrón que roba secretos...",
		}
		if err := tx.Create(&movie).Error; err != nil {
			return err
		}

		c := model.Copy{
			MovieID: movie.ID,
			Status:  model.CopyStatusAvailable,
			Medium:  "DVD",
		}
		return tx.Create(&c).Error
	})
}
