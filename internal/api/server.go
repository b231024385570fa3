package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/eloquence-api/docs"
	v1 "github.com/vietanh2810/eloquence-api/internal/api/handler/v1"
	"github.com/vietanh2810/eloquence-api/internal/api/middleware"
	"github.com/vietanh2810/eloquence-api/internal/config"
	"github.com/vietanh2810/eloquence-api/internal/repository"
	"github.com/vietanh2810/eloquence-api/internal/repository/dao"
	"github.com/vietanh2810/eloquence-api/internal/service"
	"github.com/vietanh2810/eloquence-api/internal/storage"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Hub      *v1.AvailabilityHub
	Settings *service.SettingsService
}

type repositories struct {
	settings      *repository.SettingsRepository
	foods         *repository.FoodOptionRepository
	registrations *repository.RegistrationRepository
	partners      *repository.PartnerRepository
	jury          *repository.JuryMemberRepository
	afterMovies   *repository.AfterMovieRepository
	modalities    *repository.PracticalModalityRepository
}

type handlers struct {
	registration      *v1.RegistrationHandler
	availability      *v1.AvailabilityHandler
	food              *v1.FoodHandler
	settings          *v1.SettingsHandler
	adminRegistration *v1.AdminRegistrationHandler
	stats             *v1.StatsHandler
	content           *v1.ContentHandler
}

// NewServer wires every layer on top of db and documents. The availability hub is
// always subscribed to registration events, in addition to publishers. The
// caller runs Hub.
func NewServer(conf *config.AppConfig, db *gorm.DB, documents *storage.DocumentStore, publishers ...service.EventPublisher) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	hub := v1.NewAvailabilityHub()
	publishers = append(publishers, hub)

	repos := initRepositories(db)
	settingsSvc := service.NewSettingsService(repos.settings)

	s := &Server{
		Config:   conf,
		Router:   engine,
		Hub:      hub,
		Settings: settingsSvc,
	}

	s.MountMiddlewares()
	s.MountHandlers(s.initHandlers(repos, settingsSvc, documents, publishers))

	return s
}

func initRepositories(db *gorm.DB) repositories {
	return repositories{
		settings: repository.NewSettingsRepository(dao.NewSettingsDAO(db)),
		foods:    repository.NewFoodOptionRepository(dao.NewFoodOptionDAO(db)),
		registrations: repository.NewRegistrationRepository(
			dao.NewRegistrationDAO(db),
			dao.NewTransactionDAO(db),
		),
		partners:    repository.NewPartnerRepository(dao.NewPartnerDAO(db)),
		jury:        repository.NewJuryMemberRepository(dao.NewJuryMemberDAO(db)),
		afterMovies: repository.NewAfterMovieRepository(dao.NewAfterMovieDAO(db)),
		modalities:  repository.NewPracticalModalityRepository(dao.NewPracticalModalityDAO(db)),
	}
}

func (s *Server) initHandlers(repos repositories, settingsSvc *service.SettingsService, documents *storage.DocumentStore, publishers []service.EventPublisher) handlers {
	maxUploadBytes := s.Config.Storage.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = service.DefaultMaxDocumentBytes
	}

	admissionSvc := service.NewAdmissionService(
		repos.settings,
		repos.foods,
		repos.registrations,
		documents,
		service.WithPublishers(publishers...),
		service.WithMaxDocumentBytes(maxUploadBytes),
	)
	foodSvc := service.NewFoodService(repos.foods, repos.registrations)
	registrationSvc := service.NewRegistrationService(repos.registrations, documents, publishers...)
	statsSvc := service.NewStatsService(repos.settings, repos.registrations, foodSvc)
	contentSvc := service.NewContentService(repos.partners, repos.jury, repos.afterMovies, repos.modalities)

	return handlers{
		registration:      v1.NewRegistrationHandler(admissionSvc, maxUploadBytes),
		availability:      v1.NewAvailabilityHandler(statsSvc, s.Hub, s.Config.API.AllowedCORSDomains),
		food:              v1.NewFoodHandler(foodSvc),
		settings:          v1.NewSettingsHandler(settingsSvc),
		adminRegistration: v1.NewAdminRegistrationHandler(registrationSvc),
		stats:             v1.NewStatsHandler(statsSvc),
		content:           v1.NewContentHandler(contentSvc),
	}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.GET("/availability", h.availability.HandleGetAvailability)
		public.GET("/availability/ws", h.availability.HandleAvailabilityFeed)
		public.GET("/food-options", h.food.HandleListActiveFoodOptions)
		public.POST("/registrations/spectators", h.registration.HandleRegisterSpectator)
		public.POST("/registrations/candidates", h.registration.HandleRegisterCandidate)
		public.GET("/content", h.content.HandleGetHome)
		public.GET("/partners", h.content.HandleListPartners)
	}

	admin := s.Router.Group(basePath+"/admin", middleware.NewAuthenticator(s.Config.API.JWTSigningKey).RequireAdmin())
	{
		admin.GET("/settings", h.settings.HandleGetSettings)
		admin.PATCH("/settings", h.settings.HandleUpdateSettings)

		admin.GET("/food-options", h.food.HandleListFoodOptions)
		admin.POST("/food-options", h.food.HandleCreateFoodOption)
		admin.PATCH("/food-options/:id", h.food.HandleUpdateFoodOption)
		admin.DELETE("/food-options/:id", h.food.HandleDeleteFoodOption)

		admin.GET("/registrations/spectators", h.adminRegistration.HandleListSpectators)
		admin.DELETE("/registrations/spectators/:id", h.adminRegistration.HandleDeleteSpectator)
		admin.GET("/registrations/candidates", h.adminRegistration.HandleListCandidates)
		admin.DELETE("/registrations/candidates/:id", h.adminRegistration.HandleDeleteCandidate)
		admin.GET("/registrations/candidates/:id/documents/:kind", h.adminRegistration.HandleDownloadCandidateDocument)

		admin.GET("/partners", h.content.HandleListPartners)
		admin.POST("/partners", h.content.HandleCreatePartner)
		admin.PATCH("/partners/:id", h.content.HandleUpdatePartner)
		admin.DELETE("/partners/:id", h.content.HandleDeletePartner)

		admin.GET("/jury-members", h.content.HandleListJuryMembers)
		admin.POST("/jury-members", h.content.HandleCreateJuryMember)
		admin.PATCH("/jury-members/:id", h.content.HandleUpdateJuryMember)
		admin.DELETE("/jury-members/:id", h.content.HandleDeleteJuryMember)

		admin.GET("/after-movies", h.content.HandleListAfterMovies)
		admin.POST("/after-movies", h.content.HandleCreateAfterMovie)
		admin.PATCH("/after-movies/:id", h.content.HandleUpdateAfterMovie)
		admin.DELETE("/after-movies/:id", h.content.HandleDeleteAfterMovie)

		admin.GET("/practical-modalities", h.content.HandleListPracticalModalities)
		admin.POST("/practical-modalities", h.content.HandleCreatePracticalModality)
		admin.PATCH("/practical-modalities/:id", h.content.HandleUpdatePracticalModality)
		admin.DELETE("/practical-modalities/:id", h.content.HandleDeletePracticalModality)

		admin.GET("/dashboard", h.stats.HandleDashboard)
		admin.GET("/recap", h.stats.HandleRecap)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Eloquence contest registrations API"
	docs.SwaggerInfo.Description = "Capacity-bounded registrations for spectators and candidates."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
