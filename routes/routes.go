package routes

import (
	"musicweb-api/config"
	"musicweb-api/handlers"
	"musicweb-api/helper"
	"musicweb-api/middleware"
	"musicweb-api/models"
	"musicweb-api/repositories"
	"musicweb-api/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Services is the service graph built from a database and configuration.
type Services struct {
	Tokens      services.TokenService
	Permissions services.PermissionService
	Auth        services.AuthService
	Music       services.MusicService
	Reviews     services.ReviewService
	Users       services.UserService
}

func NewServices(db *gorm.DB, cfg *config.Config) *Services {
	userRepo := repositories.NewUserRepository(db)
	permRepo := repositories.NewPermissionRepository(db)
	musicRepo := repositories.NewMusicRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	tokens := services.NewTokenService([]byte(cfg.JWT.Secret), cfg.JWT.Issuer)
	perms := services.NewPermissionService(permRepo, userRepo)

	return &Services{
		Tokens:      tokens,
		Permissions: perms,
		Auth: services.NewAuthService(userRepo, perms, tokens, services.AuthOptions{
			LoginTTL:    cfg.JWT.Expiration,
			RegisterTTL: cfg.JWT.RegisterExpiration,
			BcryptCost:  cfg.Security.BcryptCost,
		}),
		Music:   services.NewMusicService(musicRepo, genreRepo, reviewRepo),
		Reviews: services.NewReviewService(reviewRepo, musicRepo, perms),
		Users:   services.NewUserService(userRepo, cfg.Security.BcryptCost),
	}
}

type router struct {
	svc          *Services
	auth         *handlers.AuthHandler
	music        *handlers.MusicHandler
	reviews      *handlers.ReviewHandler
	users        *handlers.UserHandler
	health       *handlers.HealthHandler
	loginLimiter *middleware.RateLimiter
}

// NewRouter builds the HTTP engine. The API is served both at the root and under /api.
func NewRouter(db *gorm.DB, cfg *config.Config, svc *Services) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)

	h := helper.NewHTTPHelper()
	r := &router{
		svc:          svc,
		auth:         handlers.NewAuthHandler(svc.Auth, h),
		music:        handlers.NewMusicHandler(svc.Music, h),
		reviews:      handlers.NewReviewHandler(svc.Reviews, h),
		users:        handlers.NewUserHandler(svc.Users, svc.Permissions, h),
		health:       handlers.NewHealthHandler(db, h),
		loginLimiter: middleware.NewRateLimiter(cfg.Security.LoginRateLimit, cfg.Security.LoginRateWindow),
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(cfg.Security.CORSOrigins),
		middleware.SecurityHeaders(),
		gzip.Gzip(gzip.DefaultCompression),
	)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/", r.health.Index)
	engine.GET("/api", r.health.Index)

	r.register(engine.Group("/"))
	r.register(engine.Group("/api"))

	engine.NoRoute(r.health.NotFound)
	return engine
}

func (r *router) register(rg *gin.RouterGroup) {
	authed := middleware.AuthMiddleware(r.svc.Auth)
	can := func(permission string) gin.HandlerFunc {
		return middleware.CheckPermission(r.svc.Permissions, permission)
	}

	rg.GET("/health", r.health.Health)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", r.auth.Register)
		auth.POST("/login", r.loginLimiter.Middleware(), r.auth.Login)
		auth.GET("/profile", authed, r.auth.GetProfile)
		auth.PUT("/profile", authed, r.auth.UpdateProfile)
		auth.PATCH("/profile", authed, r.auth.UpdateProfile)
		auth.POST("/change-password", authed, r.auth.ChangePassword)
	}

	music := rg.Group("/music")
	{
		music.GET("", r.music.GetMusicList)
		music.GET("/genres", r.music.GetGenres)
		music.GET("/:id", r.music.GetMusic)
		music.GET("/:id/reviews", r.music.GetMusicReviews)
		music.POST("", authed, can(models.PermMusicCreate), r.music.CreateMusic)
		music.PUT("/:id", authed, can(models.PermMusicUpdate), r.music.UpdateMusic)
		music.PATCH("/:id", authed, can(models.PermMusicUpdate), r.music.UpdateMusic)
		music.DELETE("/:id", authed, can(models.PermMusicDelete), r.music.DeleteMusic)
	}

	reviews := rg.Group("/reviews", authed)
	{
		reviews.GET("", can(models.PermReviewsRead), r.reviews.GetReviews)
		reviews.GET("/:id", can(models.PermReviewsRead), r.reviews.GetReview)
		reviews.POST("", can(models.PermReviewsCreate), r.reviews.CreateReview)
		reviews.PUT("/:id", can(models.PermReviewsUpdate), r.reviews.UpdateReview)
		reviews.PATCH("/:id", can(models.PermReviewsUpdate), r.reviews.UpdateReview)
		reviews.DELETE("/:id", can(models.PermReviewsDelete), r.reviews.DeleteReview)
	}

	users := rg.Group("/users", authed)
	{
		users.GET("", can(models.PermUsersRead), r.users.GetUsers)
		users.GET("/:id", can(models.PermUsersRead), r.users.GetUser)
		users.POST("", can(models.PermUsersCreate), r.users.CreateUser)
		users.PUT("/:id", can(models.PermUsersUpdate), r.users.UpdateUser)
		users.PATCH("/:id", can(models.PermUsersUpdate), r.users.UpdateUser)
		users.DELETE("/:id", can(models.PermUsersDelete), r.users.DeleteUser)
		users.GET("/:id/permissions", can(models.PermUsersRead), r.users.GetUserPermissions)
		users.PUT("/:id/permissions", middleware.RequireRole(models.RoleAdmin), r.users.ReplaceUserPermissions)
	}
}
