package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
)

type RentalLogRepo interface {
	WithTx(tx *gorm.DB) RentalLogRepo
	Create(entry *model.RentalLog) error
	GetByUserID(userID uint) ([]model.RentalLog, error)
	ListAll() ([]model.RentalLog, error)
	Count() (int64, error)
}

type rentalLogRepoGorm struct {
	db *gorm.DB
}

var _ RentalLogRepo = (*rentalLogRepoGorm)(nil)

func NewRentalLogRepoGorm(db *gorm.DB) *rentalLogRepoGorm {
	return &rentalLogRepoGorm{
		db: db,
	}
}

func (r *rentalLogRepoGorm) WithTx(tx *gorm.DB) RentalLogRepo {
	return &rentalLogRepoGorm{
		db: tx,
	}
}

func (r *rentalLogRepoGorm) Create(entry *model.RentalLog) error {
	ctx := context.Background()
	if err := gorm.G[model.RentalLog](r.db).Create(ctx, entry); err != nil {
		return err
	}
	return nil
}

func (r *rentalLogRepoGorm) GetByUserID(userID uint) ([]model.RentalLog, error) {
	ctx := context.Background()
	entries, err := gorm.G[model.RentalLog](r.db).Where("user_id = ?", userID).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *rentalLogRepoGorm) ListAll() ([]model.RentalLog, error) {
	ctx := context.Background()
	entries, err := gorm.G[model.RentalLog](r.db).Order("id").Find(ctx)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *rentalLogRepoGorm) Count() (int64, error) {
	ctx := context.Background()
	var n int64
	err := r.db.WithContext(ctx).Model(&model.RentalLog{}).Count(&n).Error
	return n, err
}
