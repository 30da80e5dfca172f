package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/supabase-community/supabase-go"
	"github.com/wanderly/wanderly-server/internal/clients"
	"github.com/wanderly/wanderly-server/internal/config"
	"github.com/wanderly/wanderly-server/internal/models"
	"github.com/wanderly/wanderly-server/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	// Repositories
	MongoRepo *models.MongodbRepo
	// Services
	UserService     *services.UserService
	CatalogService  *services.CatalogService
	BookingService  *services.BookingService
	CreditService   *services.CreditService
	CheckinService  *services.CheckinService
	SavedService    *services.SavedService
	ReviewService   *services.ReviewService
	AssistantClient *clients.AssistantClient
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	// Outbound collaborators
	checkout := clients.NewCheckoutClient(cfg.CheckoutURL)
	notifier := clients.NewNotifier(cfg.NotifyURL, logger)
	assistant := clients.NewAssistantClient(cfg.AssistantURL)

	userService := services.NewUserService(supa, mongo)
	catalogService := services.NewCatalogService(supa, mongo, cloudinary)
	bookingService := services.NewBookingService(supa, supa, supa, notifier)
	creditService := services.NewCreditService(supa, checkout, cfg.CentsPerCredit, cfg.FrontendURL)
	checkinService := services.NewCheckinService(supa, supa, supa)
	savedService := services.NewSavedService(mongo)
	reviewService := services.NewReviewService(mongo)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Cloudinary:      cloudinary,
		SupabaseClient:  supabaseClient,
		MongoDBClient:   mongoDBClient,
		MongoRepo:       mongo,
		UserService:     userService,
		CatalogService:  catalogService,
		BookingService:  bookingService,
		CreditService:   creditService,
		CheckinService:  checkinService,
		SavedService:    savedService,
		ReviewService:   reviewService,
		AssistantClient: assistant,
	}
}
