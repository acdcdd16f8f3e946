package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
)

type UserRepo interface {
	WithTx(tx *gorm.DB) UserRepo
	Save(user *model.User) error
	GetByID(id uint) (*model.User, error)
	// GetByIDWithRental loads the user together with the assigned copy and
	// that copy's movie in one read, so callers never touch unloaded relations.
	GetByIDWithRental(id uint) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	ListAll() ([]model.User, error)
	Delete(user *model.User) error
	DeleteByID(id uint) error
	Count() (int64, error)
}

type userRepoGorm struct {
	db *gorm.DB
}

var _ UserRepo = (*userRepoGorm)(nil)

func NewUserRepoGorm(db *gorm.DB) *userRepoGorm {
	return &userRepoGorm{
		db: db,
	}
}

func (r *userRepoGorm) WithTx(tx *gorm.DB) UserRepo {
	return &userRepoGorm{
		db: tx,
	}
}

func (r *userRepoGorm) Save(user *model.User) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Omit("AssignedCopy").Save(user).Error
}

func (r *userRepoGorm) GetByID(id uint) (*model.User, error) {
	ctx := context.Background()
	user, err := gorm.G[model.User](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) GetByIDWithRental(id uint) (*model.User, error) {
	ctx := context.Background()
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("AssignedCopy").
		Preload("AssignedCopy.Movie").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) GetByUsername(username string) (*model.User, error) {
	ctx := context.Background()
	user, err := gorm.G[model.User](r.db).Where("username = ?", username).First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepoGorm) ListAll() ([]model.User, error) {
	ctx := context.Background()
	users, err := gorm.G[model.User](r.db).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepoGorm) Delete(user *model.User) error {
	return r.DeleteByID(user.ID)
}

func (r *userRepoGorm) DeleteByID(id uint) error {
	ctx := context.Background()
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepoGorm) Count() (int64, error) {
	ctx := context.Background()
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error
	return n, err
}
