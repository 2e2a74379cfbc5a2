package routes

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
	"lifeline/pkg/ws"
)

func SetupMessageRoutes(r *gin.RouterGroup, messageHandler *handlers.MessageHandler, wsHandler *ws.Handler, jwtSecret string) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthRequired(jwtSecret))
	{
		messages.POST("/send/:doctorId", middleware.RoleRequired("patient"), messageHandler.SendToDoctor)
		messages.GET("/:doctorId", middleware.RoleRequired("patient"), messageHandler.GetConversationWithDoctor)

		messages.POST("/doctor/send/:patientId", middleware.RoleRequired("doctor"), messageHandler.SendToPatient)
		messages.GET("/doctor/patients/list", middleware.RoleRequired("doctor"), messageHandler.ListPatients)
		messages.GET("/doctor/:patientId", middleware.RoleRequired("doctor"), messageHandler.GetConversationWithPatient)
	}

	// live delivery channel for the same conversations
	r.GET("/ws", middleware.AuthRequired(jwtSecret), wsHandler.HandleConnection)
}
