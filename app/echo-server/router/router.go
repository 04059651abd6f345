package router

import (
	"adventura/internal/middleware"
	"adventura/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler) {
	users := api.Group("/users")

	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)
	users.GET("/me", handler.GetMe, middleware.AuthMiddleware())
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
	reco.GET("/activities", handler.RecommendActivities)

	api.GET("/activities/popular", handler.Popular)
}

func SetInteractionRoutes(api *echo.Group, handler *rest.InteractionHandler) {
	interactions := api.Group("/interactions", middleware.AuthMiddleware())
	interactions.POST("", handler.Track)
}

func SetPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler) {
	prefs := api.Group("/preferences", middleware.AuthMiddleware())
	prefs.GET("", handler.List)
	prefs.PUT("", handler.Replace)
}
