// routes/routes.go
package routes

import (
	"lostfound/config"
	"lostfound/services"
	"lostfound/storage"
	"lostfound/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServiceContainer holds all services and dependencies
type ServiceContainer struct {
	JWTSecret string

	Cache               *storage.Cache
	AuthService         *services.AuthService
	ReportService       *services.ReportService
	NotificationService *services.NotificationService
	MatchService        *services.MatchService
	MessageService      *services.AdminMessageService
	RewardService       *services.RewardService
	SyncService         *services.SyncService
}

// NewServiceContainer wires the storage layer and all services from the
// loaded configuration. db may be nil, in which case remote mirroring
// is disabled and every write stays local.
func NewServiceContainer(cfg *config.Config, db *mongo.Database) (*ServiceContainer, error) {
	local, err := storage.NewLocalStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	var mirror storage.Remote
	if db != nil && cfg.MirrorWrites {
		mirror = storage.NewMongoMirror(db)
	}
	cache := storage.NewCache(local, mirror)

	var images *services.ImageService
	if cfg.B2ApplicationKeyID != "" && cfg.B2ApplicationKey != "" && cfg.B2BucketName != "" {
		images, err = services.NewImageService(cfg.B2ApplicationKeyID, cfg.B2ApplicationKey, cfg.B2BucketName)
		if err != nil {
			return nil, err
		}
	} else {
		utils.LogWarning("B2 credentials not configured, image uploads are disabled")
	}

	matcher := services.NewMatcherClient(cfg.MatcherBaseURL)
	messagesAPI := services.NewMessageAPIClient(cfg.MessagesAPIBase)

	syncService := services.NewSyncService(cache, mirror, messagesAPI)
	notificationService := services.NewNotificationService(cache, matcher)

	return &ServiceContainer{
		JWTSecret:           cfg.JWTSecret,
		Cache:               cache,
		AuthService:         services.NewAuthService(cache, cfg.JWTSecret, cfg.JWTExpiration, cfg.AdminAccessCode, cfg.AllowedEmailDomains),
		ReportService:       services.NewReportService(cache, images, cfg.AllowedEmailDomains),
		NotificationService: notificationService,
		MatchService:        services.NewMatchService(matcher, notificationService),
		MessageService:      services.NewAdminMessageService(cache, messagesAPI, syncService),
		RewardService:       services.NewRewardService(cache, matcher),
		SyncService:         syncService,
	}, nil
}

// SetupRoutes registers all API route groups.
// This function is called from main.go after middleware is already set up
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	RegisterAuthRoutes(api, container)
	RegisterReportRoutes(api, container)
	RegisterNotificationRoutes(api, container)
	RegisterAdminRoutes(api, container)
	RegisterRewardRoutes(api, container)
}
