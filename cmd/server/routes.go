package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/config"
	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/handlers"
	"github.com/bureaunet/directory-backend/internal/middleware"
	"github.com/bureaunet/directory-backend/pkg/storage"
)

// routeHandlers groups the handlers mounted by newRouter
type routeHandlers struct {
	auth         *handlers.AuthHandler
	profile      *handlers.ProfileHandler
	registration *handlers.RegistrationHandler
	image        *handlers.ImageHandler
	files        *handlers.FileHandler
}

// newRouter builds the gin engine with middleware and every route
func newRouter(cfg *config.Config, logger *logrus.Logger, db database.DB, h routeHandlers) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 32 << 20

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	if cfg.Security.EnableRequestLog {
		router.Use(requestLogger(logger))
	}

	corsConfig := cors.Config{
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
	}
	if len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, category := range storage.Categories {
		router.GET("/"+string(category)+"/*filepath", h.files.Serve(category))
	}

	api := router.Group("/api")
	{
		// Authentication
		api.POST("/admin/login", h.auth.AdminLogin)
		api.POST("/distributor/login", h.auth.DistributorLogin)
		api.POST("/bureaulogin", h.auth.BureauLogin)

		// Listings
		api.GET("/admin", h.profile.ListAdmins)
		api.GET("/distributors", h.profile.ListDistributors)
		api.GET("/bureau_profiles", h.profile.ListBureaus)
		api.GET("/bureau_profiles_distributer", h.profile.ListBureausByDistributor)
		api.GET("/bureau_profiles_bureauId", h.profile.ListBureausByBureauID)

		// Registration
		api.POST("/distributor/create", h.registration.CreateDistributor)
		api.POST("/bureau/create", h.registration.CreateBureau)

		// Bureau profile and images
		api.PUT("/bureau/update", h.profile.UpdateBureau)
		api.PUT("/bureau/uploadBanner", h.image.UploadBanner)
		api.POST("/bureau/slider", h.image.AddSliderImage)
		api.GET("/bureau/getBannerImages", h.image.ListSliderImages)
		api.DELETE("/deleteBannerImage/:imageId", h.image.DeleteSliderImage)

		// Gallery
		api.POST("/gallery/upload", h.image.AddGalleryImage)
		api.GET("/gallery/getImages", h.image.ListGalleryImages)
		api.DELETE("/deleteGalleryImage/:imageId", h.image.DeleteGalleryImage)
	}

	return router
}
