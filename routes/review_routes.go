package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
)

func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, jwtSecret string) {
	// anyone can read a doctor's reviews
	r.GET("/doctors/:id/reviews", reviewHandler.ListByDoctor)

	reviews := r.Group("/reviews")
	reviews.Use(middleware.AuthRequired(jwtSecret))
	{
		reviews.POST("/doctors/:doctorId", middleware.RoleRequired("patient"), reviewHandler.Create)
		reviews.DELETE("/:id", middleware.RoleRequired("patient", "admin"), reviewHandler.Delete)
	}

	admin := r.Group("/admin/reviews")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired("admin"))
	{
		admin.GET("", reviewHandler.ListAll)
	}
}
