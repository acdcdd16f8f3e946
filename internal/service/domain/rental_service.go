package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/repository"
	"github.com/videoclub/rental/internal/service"
)

type RentalService interface {
	AssignCopy(userID, movieID uint) (*model.Copy, error)
	ReleaseCopy(userID uint) (*model.Copy, error)
	RecordRental(copyID, movieID, userID uint, action model.RentalAction) error
	GetRentalHistory(userID uint) ([]model.RentalLog, error)
}

type rentalService struct {
	db       *gorm.DB
	copyRepo repository.CopyRepo
	userRepo repository.UserRepo
	logRepo  repository.RentalLogRepo
}

var _ RentalService = (*rentalService)(nil)

func NewRentalService(db *gorm.DB, copyRepo repository.CopyRepo, userRepo repository.UserRepo, logRepo repository.RentalLogRepo) *rentalService {
	return &rentalService{
		db:       db,
		copyRepo: copyRepo,
		userRepo: userRepo,
		logRepo:  logRepo,
	}
}

// AssignCopy rents an available copy of the movie to the user. The user is
// re-loaded from storage inside the transaction; the caller's view may be
// stale. Candidate copies are taken in ascending id order. Either the chosen
// copy gets both its user and status updated, or the transaction rolls back
// and storage is untouched.
func (s *rentalService) AssignCopy(userID, movieID uint) (*model.Copy, error) {
	var assigned model.Copy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.WithTx(tx).GetByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNotFound
			}
			return err
		}

		_, err = s.copyRepo.WithTx(tx).GetByUserID(user.ID)
		if err == nil {
			return service.ErrAlreadyRented
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		available, err := s.copyRepo.WithTx(tx).GetAvailableByMovieID(movieID)
		if err != nil {
			return err
		}
		if len(available) == 0 {
			return service.ErrNoAvailableCopy
		}

		c := available[0]
		c.UserID = &user.ID
		c.Status = model.CopyStatusRented
		if err := s.copyRepo.WithTx(tx).Save(&c); err != nil {
			return err
		}
		assigned = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assigned, nil
}

// ReleaseCopy is the inverse transition: the user's rented copy goes back to
// available and loses its user reference.
func (s *rentalService) ReleaseCopy(userID uint) (*model.Copy, error) {
	var released model.Copy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.copyRepo.WithTx(tx).GetByUserID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNoActiveRental
			}
			return err
		}

		c.UserID = nil
		c.Status = model.CopyStatusAvailable
		if err := s.copyRepo.WithTx(tx).Save(c); err != nil {
			return err
		}
		released = *c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &released, nil
}

// RecordRental appends an audit entry for a completed rent or return.
func (s *rentalService) RecordRental(copyID, movieID, userID uint, action model.RentalAction) error {
	entry := &model.RentalLog{
		CopyID:  copyID,
		MovieID: movieID,
		UserID:  userID,
		Action:  action,
	}
	return s.logRepo.Create(entry)
}

func (s *rentalService) GetRentalHistory(userID uint) ([]model.RentalLog, error) {
	return s.logRepo.GetByUserID(userID)
}
