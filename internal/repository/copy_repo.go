package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
)

type CopyRepo interface {
	WithTx(tx *gorm.DB) CopyRepo
	Save(copy *model.Copy) error
	GetByID(id uint) (*model.Copy, error)
	GetByMovieID(movieID uint) ([]model.Copy, error)
	// GetAvailableByMovieID returns unassigned copies of a movie ordered by
	// ascending id, so the rental service always picks the lowest id first.
	GetAvailableByMovieID(movieID uint) ([]model.Copy, error)
	GetByUserID(userID uint) (*model.Copy, error)
	ListAll() ([]model.Copy, error)
	Delete(copy *model.Copy) error
	DeleteByID(id uint) error
	DeleteByMovieID(movieID uint) error
	Count() (int64, error)
}

type copyRepoGorm struct {
	db *gorm.DB
}

var _ CopyRepo = (*copyRepoGorm)(nil)

func NewCopyRepoGorm(db *gorm.DB) *copyRepoGorm {
	return &copyRepoGorm{
		db: db,
	}
}

func (r *copyRepoGorm) WithTx(tx *gorm.DB) CopyRepo {
	return &copyRepoGorm{
		db: tx,
	}
}

func (r *copyRepoGorm) Save(copy *model.Copy) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Omit("Movie", "User").Save(copy).Error
}

func (r *copyRepoGorm) GetByID(id uint) (*model.Copy, error) {
	ctx := context.Background()
	copy, err := gorm.G[model.Copy](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

func (r *copyRepoGorm) GetByMovieID(movieID uint) ([]model.Copy, error) {
	ctx := context.Background()
	copies, err := gorm.G[model.Copy](r.db).Where("movie_id = ?", movieID).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return copies, nil
}

func (r *copyRepoGorm) GetAvailableByMovieID(movieID uint) ([]model.Copy, error) {
	ctx := context.Background()
	copies, err := gorm.G[model.Copy](r.db).
		Where("movie_id = ? AND user_id IS NULL", movieID).
		Order("id").
		Find(ctx)
	if err != nil {
		return nil, err
	}
	return copies, nil
}

func (r *copyRepoGorm) GetByUserID(userID uint) (*model.Copy, error) {
	ctx := context.Background()
	copy, err := gorm.G[model.Copy](r.db).Where("user_id = ?", userID).First(ctx)
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

func (r *copyRepoGorm) ListAll() ([]model.Copy, error) {
	ctx := context.Background()
	copies, err := gorm.G[model.Copy](r.db).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return copies, nil
}

func (r *copyRepoGorm) Delete(copy *model.Copy) error {
	return r.DeleteByID(copy.ID)
}

func (r *copyRepoGorm) DeleteByID(id uint) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Delete(&model.Copy{}, id).Error
}

func (r *copyRepoGorm) DeleteByMovieID(movieID uint) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Where("movie_id = ?", movieID).Delete(&model.Copy{}).Error
}

func (r *copyRepoGorm) Count() (int64, error) {
	ctx := context.Background()
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Copy{}).Count(&n).Error
	return n, err
}
