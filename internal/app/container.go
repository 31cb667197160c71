package app

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/api"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/booking"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/file"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/pkg/storage"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    []string
	DBPool         *pgxpool.Pool
	Redis          *redis.Client // nil disables the filter history cache
	Storage        storage.Storage
	UploadMaxBytes int64
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	Logger         *slog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	if err := api.RegisterValidators(); err != nil {
		return nil, err
	}

	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	var history campsite.FilterHistory = campsite.NopFilterHistory{}
	if cfg.Redis != nil {
		history = campsite.NewRedisFilterHistory(cfg.Redis)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// CampSite repository doubles as the operator lookup for team and the campsite getter for spot.
	campsiteRepo := campsite.NewPgxRepository(cfg.DBPool)

	// Team Module
	teamRepo := team.NewPgxRepository(cfg.DBPool)
	teamService := team.NewService(teamRepo, campsiteRepo, userService)

	// CampSite Module
	campsiteService := campsite.NewService(campsiteRepo, teamService, history)

	// Spot Module
	spotRepo := spot.NewPgxRepository(cfg.DBPool)
	spotService := spot.NewService(spotRepo, campsiteRepo, teamService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, teamService, cfg.Logger)

	// Photo Module
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, cfg.Storage, teamService, cfg.UploadMaxBytes, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UploadMaxBytes:  cfg.UploadMaxBytes,
		Logger:          cfg.Logger,
		JWTManager:      jwtManager,
		UserService:     userService,
		CampSiteService: campsiteService,
		SpotService:     spotService,
		BookingService:  bookingService,
		TeamService:     teamService,
		FileService:     fileService,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
