package main

import (
	"database/sql"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"toiletBack/internal/config"
	"toiletBack/internal/handlers"
	"toiletBack/internal/repositories"
	"toiletBack/internal/services"
	"toiletBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB

	jwtSecret string

	toiletHandler   *handlers.ToiletHandler
	hostHandler     *handlers.HostHandler
	reviewHandler   *handlers.ReviewHandler
	favoriteHandler *handlers.FavoriteHandler
	sessionHandler  *handlers.SessionHandler
	reportHandler   *handlers.ReportHandler
	taxonomyHandler *handlers.TaxonomyHandler
	userHandler     *handlers.UserHandler
	uploadHandler   *handlers.UploadHandler
}

func initializeApp(cfg config.Config, db *sql.DB, cache *redis.Client, errorLog, infoLog *log.Logger) *application {
	handlers.SetErrorLog(errorLog)

	toiletRepo := &repositories.ToiletRepository{DB: db}
	wilayaRepo := &repositories.WilayaRepository{DB: db}
	categoryRepo := &repositories.CategoryRepository{DB: db}
	favoriteRepo := &repositories.FavoriteRepository{DB: db}
	reviewRepo := &repositories.ReviewRepository{DB: db}
	reportRepo := &repositories.ReportRepository{DB: db}
	sessionRepo := &repositories.SessionRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}
	photoRepo := &repositories.PhotoRepository{DB: db}

	tokenManager, err := utils.NewManager(cfg.JWT.Secret)
	if err != nil {
		errorLog.Fatal(err)
	}

	storage, err := utils.NewStorage(cfg.Storage)
	if err != nil {
		infoLog.Printf("object storage disabled: %v", err)
	}

	toiletService := &services.ToiletService{
		ToiletRepo: toiletRepo,
		WilayaRepo: wilayaRepo,
	}
	hostService := &services.HostService{
		ToiletRepo:   toiletRepo,
		CategoryRepo: categoryRepo,
		WilayaRepo:   wilayaRepo,
		PhotoRepo:    photoRepo,
		UserRepo:     userRepo,
	}
	reviewService := &services.ReviewService{ReviewRepo: reviewRepo, ToiletRepo: toiletRepo}
	favoriteService := &services.FavoriteService{FavoriteRepo: favoriteRepo, ToiletRepo: toiletRepo, WilayaRepo: wilayaRepo}
	sessionService := &services.SessionService{SessionRepo: sessionRepo, ToiletRepo: toiletRepo}
	reportService := &services.ReportService{ReportRepo: reportRepo, ToiletRepo: toiletRepo}
	taxonomyService := &services.TaxonomyService{
		WilayaRepo:   wilayaRepo,
		CategoryRepo: categoryRepo,
		Cache:        cache,
		CacheTTL:     10 * time.Minute,
	}
	userService := &services.UserService{
		UserRepo:     userRepo,
		WilayaRepo:   wilayaRepo,
		TokenManager: tokenManager,
	}

	return &application{
		errorLog:  errorLog,
		infoLog:   infoLog,
		cfg:       cfg,
		db:        db,
		jwtSecret: cfg.JWT.Secret,

		toiletHandler:   &handlers.ToiletHandler{Service: toiletService, ReviewService: reviewService},
		hostHandler:     &handlers.HostHandler{Service: hostService},
		reviewHandler:   &handlers.ReviewHandler{Service: reviewService},
		favoriteHandler: &handlers.FavoriteHandler{Service: favoriteService},
		sessionHandler:  &handlers.SessionHandler{Service: sessionService},
		reportHandler:   &handlers.ReportHandler{Service: reportService},
		taxonomyHandler: &handlers.TaxonomyHandler{Service: taxonomyService},
		userHandler:     &handlers.UserHandler{Service: userService},
		uploadHandler:   &handlers.UploadHandler{Storage: storage, HostService: hostService},
	}
}
