package rest

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"heala/config"
	"heala/internal/service"
	"heala/pkg/metrics"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())
	router.Use(metrics.Middleware())

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)
			users.DELETE("/:id", h.deactivateUser)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.GET("/", h.getUsers)
			}
		}

		practitioners := api.Group("/practitioners")
		{
			practitioners.GET("/", h.getPractitioners)
			practitioners.GET("/me", h.authMiddleware(), h.practitionerMiddleware(), h.getMyPractitionerProfile)
			practitioners.GET("/:id", h.getPractitionerByID)
			practitioners.GET("/:id/completeness", h.getPractitionerCompleteness)
			practitioners.GET("/:id/media", h.getPractitionerMedia)
			practitioners.GET("/:id/availability", h.getPractitionerAvailability)

			auth := practitioners.Group("/", h.authMiddleware())
			{
				auth.PUT("/:id", h.updatePractitioner)
				auth.POST("/:id/cover-photo", h.uploadCoverPhoto)
				auth.POST("/:id/media", h.uploadPractitionerMedia)
				auth.DELETE("/media/:mediaId", h.deletePractitionerMedia)
				auth.POST("/:id/submit-for-review", h.submitForReview)

				auth.POST("/availability", h.practitionerMiddleware(), h.addAvailability)
				auth.DELETE("/availability/:id", h.practitionerMiddleware(), h.deleteAvailability)

				auth.GET("/:id/stats", h.getPractitionerStats)
			}
		}

		bookings := api.Group("/bookings")
		bookings.Use(h.authMiddleware())
		{
			bookings.POST("/", h.createBooking)
			bookings.GET("/", h.getBookings)
			bookings.GET("/:id", h.getBookingByID)
			bookings.PATCH("/:id/status", h.transitionBooking)
			bookings.GET("/client-stats", h.getClientStats)
		}

		documents := api.Group("/documents")
		documents.Use(h.authMiddleware())
		{
			documents.POST("/", h.practitionerMiddleware(), h.uploadDocument)
			documents.GET("/practitioner/:practitionerId", h.getPractitionerDocuments)
			documents.GET("/:id/url", h.getDocumentURL)
			documents.DELETE("/:id", h.deleteDocument)

			admin := documents.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.PUT("/:id/review", h.reviewDocument)
			}
		}

		admin := api.Group("/admin")
		admin.Use(h.authMiddleware(), h.adminMiddleware())
		{
			admin.GET("/overview", h.getAdminOverview)
		}

		verification := api.Group("/verification")
		verification.Use(h.authMiddleware(), h.adminMiddleware())
		{
			verification.GET("/queue", h.getVerificationQueue)
			verification.POST("/:practitionerId/decide", h.decideVerification)
			verification.GET("/:practitionerId/notes", h.getVerificationNotes)
		}

		events := api.Group("/events")
		{
			events.GET("/", h.getEvents)
			events.GET("/:id", h.getEventByID)

			auth := events.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createEvent)
				auth.PUT("/:id", h.updateEvent)
				auth.DELETE("/:id", h.deleteEvent)
				auth.POST("/:id/register", h.registerForEvent)
				auth.GET("/:id/registrations", h.getEventRegistrations)
			}
		}
	}
}
