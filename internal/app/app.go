package app

import (
	"github.com/videoclub/rental/config"
	"github.com/videoclub/rental/internal/cache"
	"github.com/videoclub/rental/internal/database"
	"github.com/videoclub/rental/internal/mq"
	"github.com/videoclub/rental/internal/repository"
	"github.com/videoclub/rental/internal/seed"
	"github.com/videoclub/rental/internal/service/domain"
	"github.com/videoclub/rental/internal/service/workflow"
	"github.com/videoclub/rental/internal/session"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config

	DB     *gorm.DB
	Cache  *cache.Cache
	Logger *zap.Logger
	MQConn *amqp.Connection

	UserRepo      repository.UserRepo
	MovieRepo     repository.MovieRepo
	CopyRepo      repository.CopyRepo
	RentalLogRepo repository.RentalLogRepo

	CatalogService domain.CatalogService
	RentalService  domain.RentalService
	UserService    domain.UserService

	RentalWorkflow *workflow.RentalWorkflow
	AuditWorkflow  *workflow.AuditWorkflow

	Sessions *session.Manager
}

// New wires repositories, services and workflows together. cache and mqConn
// may be nil; the dependent pieces switch to their in-process fallbacks.
func New(config *config.Config, db *gorm.DB, cache *cache.Cache, mqConn *amqp.Connection, logger *zap.Logger) *App {
	movieRepo := repository.NewMovieRepoGorm(db)
	copyRepo := repository.NewCopyRepoGorm(db)
	userRepo := repository.NewUserRepoGorm(db)
	rentalLogRepo := repository.NewRentalLogRepoGorm(db)

	catalogService := domain.NewCatalogService(db, movieRepo, copyRepo, cache)
	rentalService := domain.NewRentalService(db, copyRepo, userRepo, rentalLogRepo)
	userService := domain.NewUserService(db, userRepo)

	rentalWorkflow := workflow.NewRentalWorkflow(rentalService, cache, mqConn, logger)
	auditWorkflow := workflow.NewAuditWorkflow(rentalService, logger)

	return &App{
		Config:         config,
		DB:             db,
		Cache:          cache,
		Logger:         logger,
		MQConn:         mqConn,
		UserRepo:       userRepo,
		MovieRepo:      movieRepo,
		CopyRepo:       copyRepo,
		RentalLogRepo:  rentalLogRepo,
		CatalogService: catalogService,
		RentalService:  rentalService,
		UserService:    userService,
		RentalWorkflow: rentalWorkflow,
		AuditWorkflow:  auditWorkflow,
		Sessions:       session.NewManager(),
	}
}

func (app *App) Init() error {
	if err := database.Migrate(app.DB); err != nil {
		return err
	}
	if err := seed.Seed(app.DB); err != nil {
		return err
	}

	if app.Cache != nil {
		movies, err := app.MovieRepo.ListAll()
		if err != nil {
			return err
		}
		movieIDAvailableMap := make(map[uint]int64)
		for _, movie := range movies {
			available, err := app.CopyRepo.GetAvailableByMovieID(movie.ID)
			if err != nil {
				return err
			}
			movieIDAvailableMap[movie.ID] = int64(len(available))
		}
		if err := app.Cache.WarmAvailability(movieIDAvailableMap); err != nil {
			return err
		}
	}

	if app.MQConn != nil {
		if err := mq.InitQueues(app.MQConn); err != nil {
			return err
		}
		if err := app.AuditWorkflow.Start(app.MQConn); err != nil {
			return err
		}
	}

	return nil
}

func (app *App) Close() error {
	sqlDB, err := app.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
