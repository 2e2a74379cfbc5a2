package handlers

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type MessageHandler struct {
	messageService services.MessageService
	logger         *logger.Logger
}

func NewMessageHandler(messageService services.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         log,
	}
}

// SendToDoctor stores a message from the authenticated patient to the
// doctor in the path.
func (h *MessageHandler) SendToDoctor(c *gin.Context) {
	h.send(c, "doctorId", models.SenderRolePatient)
}

// SendToPatient stores a message from the authenticated doctor to the
// patient in the path.
func (h *MessageHandler) SendToPatient(c *gin.Context) {
	h.send(c, "patientId", models.SenderRoleDoctor)
}

func (h *MessageHandler) send(c *gin.Context, param string, senderRole models.SenderRole) {
	senderID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	receiverID, ok := pathObjectID(c, param)
	if !ok {
		return
	}

	var req validators.MessageSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateMessageSend(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), senderID, receiverID, senderRole, req.Message)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "message sent", message)
}

// GetConversationWithDoctor returns the patient's thread with the doctor
// in the path, oldest first.
func (h *MessageHandler) GetConversationWithDoctor(c *gin.Context) {
	h.conversation(c, "doctorId")
}

// GetConversationWithPatient returns the doctor's thread with the patient
// in the path. Both parties see the identical sequence.
func (h *MessageHandler) GetConversationWithPatient(c *gin.Context) {
	h.conversation(c, "patientId")
}

func (h *MessageHandler) conversation(c *gin.Context, param string) {
	caller, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	otherID, ok := pathObjectID(c, param)
	if !ok {
		return
	}

	messages, err := h.messageService.GetConversation(c.Request.Context(), caller, otherID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "conversation retrieved", messages)
}

// ListPatients returns the distinct patients who have messaged the
// authenticated doctor.
func (h *MessageHandler) ListPatients(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	patients, err := h.messageService.GetDoctorPatients(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "patients retrieved", patients)
}
