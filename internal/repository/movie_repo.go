package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
)

type MovieRepo interface {
	WithTx(tx *gorm.DB) MovieRepo
	Save(movie *model.Movie) error
	GetByID(id uint) (*model.Movie, error)
	GetByIDWithCopies(id uint) (*model.Movie, error)
	ListAll() ([]model.Movie, error)
	Delete(movie *model.Movie) error
	DeleteByID(id uint) error
	Count() (int64, error)
}

type movieRepoGorm struct {
	db *gorm.DB
}

var _ MovieRepo = (*movieRepoGorm)(nil)

func NewMovieRepoGorm(db *gorm.DB) *movieRepoGorm {
	return &movieRepoGorm{
		db: db,
	}
}

func (r *movieRepoGorm) WithTx(tx *gorm.DB) MovieRepo {
	return &movieRepoGorm{
		db: tx,
	}
}

// Save inserts the movie when it has no id yet and updates it otherwise.
func (r *movieRepoGorm) Save(movie *model.Movie) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Omit("Copies").Save(movie).Error
}

func (r *movieRepoGorm) GetByID(id uint) (*model.Movie, error) {
	ctx := context.Background()
	movie, err := gorm.G[model.Movie](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepoGorm) GetByIDWithCopies(id uint) (*model.Movie, error) {
	ctx := context.Background()
	var movie model.Movie
	err := r.db.WithContext(ctx).Preload("Copies").First(&movie, id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepoGorm) ListAll() ([]model.Movie, error) {
	ctx := context.Background()
	movies, err := gorm.G[model.Movie](r.db).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepoGorm) Delete(movie *model.Movie) error {
	return r.DeleteByID(movie.ID)
}

func (r *movieRepoGorm) DeleteByID(id uint) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Delete(&model.Movie{}, id).Error
}

func (r *movieRepoGorm) Count() (int64, error) {
	ctx := context.Background()
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Movie{}).Count(&n).Error
	return n, err
}
