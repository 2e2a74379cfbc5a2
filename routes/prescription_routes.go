package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
)

func SetupPrescriptionRoutes(r *gin.RouterGroup, prescriptionHandler *handlers.PrescriptionHandler, jwtSecret string) {
	prescriptions := r.Group("/prescriptions")
	prescriptions.Use(middleware.AuthRequired(jwtSecret))
	{
		prescriptions.POST("", middleware.RoleRequired("doctor"), prescriptionHandler.Create)
		prescriptions.GET("/issued", middleware.RoleRequired("doctor"), prescriptionHandler.ListIssued)
		prescriptions.GET("/:id", prescriptionHandler.Get)
	}
}
