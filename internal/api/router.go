package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/auth"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/booking"
	bookingHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/booking/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite"
	campsiteHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/campsite/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/file"
	fileHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/file/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot"
	spotHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/spot/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team"
	teamHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/team/http"
	"github.com/Thawatchai-Petkaew/campvibe-sub001/internal/user"
	userHttp "github.com/Thawatchai-Petkaew/campvibe-sub001/internal/user/http"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction    bool
	ProdOrigins     []string
	UploadMaxBytes  int64
	Logger          *slog.Logger
	JWTManager      *auth.JWTManager
	UserService     user.Service
	CampSiteService campsite.Service
	SpotService     spot.Service
	BookingService  booking.Service
	TeamService     team.Service
	FileService     file.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request ID, logging, metrics, recovery, CORS) and registers
// the routes of every module under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Metrics(), gin.Recovery())

	// Multipart bodies larger than this spill to temporary files.
	if cfg.UploadMaxBytes > 0 {
		r.MaxMultipartMemory = cfg.UploadMaxBytes
	}

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // web client
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	optionalAuth := auth.OptionalAuth(cfg.JWTManager)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	campsiteHandler := campsiteHttp.NewHandler(cfg.CampSiteService)
	spotHandler := spotHttp.NewHandler(cfg.SpotService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	teamHandler := teamHttp.NewHandler(cfg.TeamService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		campsiteHttp.RegisterRoutes(v1, campsiteHandler, authMiddleware, optionalAuth)
		spotHttp.RegisterRoutes(v1, spotHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, optionalAuth)
		teamHttp.RegisterRoutes(v1, teamHandler, authMiddleware)
		fileHttp.RegisterRoutes(v1, fileHandler, authMiddleware)
	}

	return r
}
