package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
)

func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, jwtSecret string) {
	users := r.Group("/users")
	users.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired("patient"))
	{
		users.GET("/profile", userHandler.GetProfile)
		users.PUT("/profile", userHandler.UpdateProfile)
		users.DELETE("/profile", userHandler.DeleteAccount)
		users.GET("/bookings", userHandler.GetMyBookings)
		users.GET("/prescriptions", userHandler.GetMyPrescriptions)
		users.POST("/premium/checkout", userHandler.UpgradePremium)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired("admin"))
	{
		admin.GET("", userHandler.ListUsers)
	}
}
