package domain

import (
	"errors"

	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/cache"
	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/repository"
	"github.com/videoclub/rental/internal/service"
)

type CatalogService interface {
	CreateMovie(movie *model.Movie) error
	UpdateMovie(movie *model.Movie) error
	RemoveMovie(movieID uint) error
	GetMovieByID(movieID uint) (*model.Movie, error)
	ListMovies() ([]model.Movie, error)
	AddCopy(movieID uint, medium string) (*model.Copy, error)
}

type catalogService struct {
	db        *gorm.DB
	movieRepo repository.MovieRepo
	copyRepo  repository.CopyRepo
	cache     *cache.Cache
}

var _ CatalogService = (*catalogService)(nil)

// NewCatalogService builds the catalog service. cache may be nil, in which
// case every read goes straight to the database.
func NewCatalogService(db *gorm.DB, movieRepo repository.MovieRepo, copyRepo repository.CopyRepo, cache *cache.Cache) *catalogService {
	return &catalogService{
		db:        db,
		movieRepo: movieRepo,
		copyRepo:  copyRepo,
		cache:     cache,
	}
}

func (s *catalogService) CreateMovie(movie *model.Movie) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.movieRepo.WithTx(tx).Save(movie)
	})
	if err != nil {
		return err
	}
	s.invalidateListing()
	return nil
}

func (s *catalogService) UpdateMovie(movie *model.Movie) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.movieRepo.WithTx(tx).Save(movie)
	})
	if err != nil {
		return err
	}
	s.invalidateListing()
	return nil
}

// RemoveMovie deletes the movie and every copy referencing it. A missing
// movie is a no-op. Copies currently rented are deleted along with the rest;
// the active rental simply disappears.
func (s *catalogService) RemoveMovie(movieID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.movieRepo.WithTx(tx).GetByID(movieID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := s.copyRepo.WithTx(tx).DeleteByMovieID(movieID); err != nil {
			return err
		}
		return s.movieRepo.WithTx(tx).DeleteByID(movieID)
	})
	if err != nil {
		return err
	}
	s.invalidateListing()
	if s.cache != nil {
		s.cache.DeleteAvailability(movieID)
	}
	return nil
}

func (s *catalogService) GetMovieByID(movieID uint) (*model.Movie, error) {
	movie, err := s.movieRepo.GetByIDWithCopies(movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return movie, nil
}

func (s *catalogService) ListMovies() ([]model.Movie, error) {
	if s.cache != nil {
		if movies, err := s.cache.GetMovieList(); err == nil {
			return movies, nil
		}
	}
	movies, err := s.movieRepo.ListAll()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetMovieList(movies)
	}
	return movies, nil
}

func (s *catalogService) AddCopy(movieID uint, medium string) (*model.Copy, error) {
	var created model.Copy
	err := s.db.Transaction(func(tx *gorm.DB) error {
		_, err := s.movieRepo.WithTx(tx).GetByID(movieID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrNotFound
			}
			return err
		}
		c := model.Copy{
			MovieID: movieID,
			Status:  model.CopyStatusAvailable,
			Medium:  medium,
		}
		if err := s.copyRepo.WithTx(tx).Save(&c); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.IncrAvailability(movieID)
	}
	return &created, nil
}

func (s *catalogService) invalidateListing() {
	if s.cache != nil {
		s.cache.InvalidateMovieList()
	}
}
