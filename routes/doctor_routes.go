package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
)

func SetupDoctorRoutes(r *gin.RouterGroup, doctorHandler *handlers.DoctorHandler, jwtSecret string) {
	// public directory
	doctors := r.Group("/doctors")
	{
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.GET("/:id", doctorHandler.GetDoctor)
	}

	// patient query to a doctor, delivered by email
	r.POST("/doctors/:id/contact",
		middleware.AuthRequired(jwtSecret), middleware.RoleRequired("patient"),
		doctorHandler.ContactDoctor)

	// doctor self-service
	me := r.Group("/doctors/me")
	me.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired("doctor"))
	{
		me.GET("/profile", doctorHandler.GetProfile)
		me.PUT("/profile", doctorHandler.UpdateProfile)
		me.GET("/appointments", doctorHandler.GetAppointments)
		me.GET("/patients", doctorHandler.GetPatients)
	}

	admin := r.Group("/admin/doctors")
	admin.Use(middleware.AuthRequired(jwtSecret), middleware.RoleRequired("admin"))
	{
		admin.GET("", doctorHandler.ListAllDoctors)
		admin.PATCH("/:id/approval", doctorHandler.SetApproval)
		admin.DELETE("/:id", doctorHandler.DeleteDoctor)
	}
}
