package httpapi

import (
	"context"
	"net/http"

	"contenthub/internal/adapters/httpapi/middleware"
	"contenthub/internal/adapters/storage"
	blobPort "contenthub/internal/ports/blob"
	contentPort "contenthub/internal/ports/content"
	ratingPort "contenthub/internal/ports/rating"
	userPort "contenthub/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	RegisterUser(ctx context.Context, name, email, password string) (*userPort.AuthResponse, error)
	LoginUser(ctx context.Context, email, password string) (*userPort.AuthResponse, error)
	LogoutUser(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*userPort.UserDTO, error)
	UpdateProfile(ctx context.Context, userID, name string, avatar *blobPort.File) (*userPort.UserDTO, error)
}

type ContentUseCase interface {
	ListFeed(ctx context.Context, search string, pageIndex, pageSize int) ([]*contentPort.FeedItemDTO, error)
	GetContentDetail(ctx context.Context, contentID string) (*contentPort.ContentDetailDTO, error)
	CreateContent(ctx context.Context, ownerID, title, description string, media *blobPort.File) (*contentPort.ContentDTO, error)
	UpdateContent(ctx context.Context, contentID, ownerID, title string, description *string, media *blobPort.File) (*contentPort.ContentDTO, error)
	DeleteContent(ctx context.Context, contentID, ownerID string) error
}

type RatingUseCase interface {
	AddRating(ctx context.Context, contentID, authorID string, score int, comment string) (*ratingPort.RatingDTO, error)
	ListRatings(ctx context.Context, contentID string) (*ratingPort.RatingListDTO, error)
}

// Deps همه‌ی وابستگی‌هایی که روتر از بیرون دریافت می‌کند
type Deps struct {
	Users     UserUseCase
	Contents  ContentUseCase
	Ratings   RatingUseCase
	Verifier  middleware.TokenVerifier
	Logger    *zap.Logger
	UploadDir string
	// MaxUploadBytes caps multipart memory; 0 keeps gin's default.
	MaxUploadBytes int64
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger))
	if d.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = d.MaxUploadBytes
	}

	uc := NewUserController(d.Users, d.Logger)
	cc := NewContentController(d.Contents, d.Logger)
	rc := NewRatingController(d.Ratings, d.Logger)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "message": "ok"})
	})
	if d.UploadDir != "" {
		r.Static(storage.PublicPrefix, d.UploadDir)
	}

	api := r.Group("/api")

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	api.POST("/auth/register/v1", uc.RegisterUser)
	api.POST("/auth/login/v1", uc.LoginUser)

	protected := api.Group("", middleware.JWTAuthMiddleware(d.Verifier))

	protected.GET("/user/profile/v1", uc.GetProfile)
	protected.PUT("/user/profile/v1", uc.UpdateProfile)
	protected.POST("/user/logout/v1", uc.Logout)

	protected.GET("/contents/v1", cc.ListContents)
	protected.POST("/create/content/v1", cc.CreateContent)
	protected.GET("/content/:id/v1", cc.GetContent)
	protected.PUT("/content/:id/v1", cc.UpdateContent)
	protected.DELETE("/content/:id/v1", cc.DeleteContent)

	protected.POST("/create/rating/:id/v1", rc.AddRating)
	protected.GET("/list/rating/:id/v1", rc.ListRatings)
	return r
}
