package domain

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/repository"
	"github.com/videoclub/rental/internal/service"
)

type UserService interface {
	Authenticate(username, password string) (*model.User, error)
	GetUserWithAssignedCopy(userID uint) (*model.User, error)
	GetUserByID(userID uint) (*model.User, error)
	GetAllUsers() ([]model.User, error)
}

type userService struct {
	db   *gorm.DB
	repo repository.UserRepo
}

var _ UserService = (*userService)(nil)

func NewUserService(db *gorm.DB, userRepo repository.UserRepo) *userService {
	return &userService{
		db:   db,
		repo: userRepo,
	}
}

// Authenticate looks the user up by username and verifies the password
// against the stored bcrypt hash. Both a missing user and a wrong password
// come back as ErrInvalidCredentials.
func (s *userService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, service.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserWithAssignedCopy returns the user with the assigned copy and that
// copy's movie populated in one read. After this call the caller can walk
// user -> copy -> movie without touching the database again.
func (s *userService) GetUserWithAssignedCopy(userID uint) (*model.User, error) {
	user, err := s.repo.GetByIDWithRental(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(userID uint) (*model.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]model.User, error) {
	return s.repo.ListAll()
}

// HashPassword produces a bcrypt hash for storage. Used at seeding and
// wherever an account gets created.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
