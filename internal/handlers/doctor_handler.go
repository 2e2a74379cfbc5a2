package handlers

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type DoctorHandler struct {
	doctorService  services.DoctorService
	bookingService services.BookingService
	messageService services.MessageService
	logger         *logger.Logger
}

func NewDoctorHandler(
	doctorService services.DoctorService,
	bookingService services.BookingService,
	messageService services.MessageService,
	log *logger.Logger,
) *DoctorHandler {
	return &DoctorHandler{
		doctorService:  doctorService,
		bookingService: bookingService,
		messageService: messageService,
		logger:         log,
	}
}

// ListDoctors is the public doctor directory: approved doctors only,
// searchable by name or specialization.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	doctors, total, err := h.doctorService.ListApproved(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "doctors retrieved", doctors, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// ContactDoctor forwards a patient's question to the doctor by email.
func (h *DoctorHandler) ContactDoctor(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	doctorID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req validators.ContactDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateContactDoctor(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	if err := h.doctorService.Contact(c.Request.Context(), doctorID, userID, req.Subject, req.Message); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "your query has been sent to the doctor", nil)
}

func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doctorID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	doctor, err := h.doctorService.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "doctor retrieved", doctor)
}

// GetProfile returns the authenticated doctor's own record.
func (h *DoctorHandler) GetProfile(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	doctor, err := h.doctorService.GetByID(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "profile retrieved", doctor)
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.DoctorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateDoctorUpdate(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Photo != "" {
		updates["photo"] = req.Photo
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Specialization != "" {
		updates["specialization"] = req.Specialization
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.About != "" {
		updates["about"] = req.About
	}
	if req.TicketPrice > 0 {
		updates["ticket_price"] = req.TicketPrice
	}
	if req.TimeSlots != nil {
		slots := make([]models.TimeSlot, 0, len(req.TimeSlots))
		for _, slot := range req.TimeSlots {
			slots = append(slots, models.TimeSlot{
				Day:       slot.Day,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
			})
		}
		updates["time_slots"] = slots
	}

	doctor, err := h.doctorService.UpdateProfile(c.Request.Context(), doctorID, updates)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "profile updated", doctor)
}

// GetAppointments lists the doctor's bookings.
func (h *DoctorHandler) GetAppointments(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListByDoctor(c.Request.Context(), doctorID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "appointments retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetPatients lists patients who have messaged the doctor.
func (h *DoctorHandler) GetPatients(c *gin.Context) {
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

// ListAllDoctors is the admin listing: includes unapproved doctors.
func (h *DoctorHandler) ListAllDoctors(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	doctors, total, err := h.doctorService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "doctors retrieved", doctors, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// SetApproval updates a doctor's approval status (admin only).
func (h *DoctorHandler) SetApproval(c *gin.Context) {
	doctorID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req validators.DoctorApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	doctor, err := h.doctorService.SetApproval(c.Request.Context(), doctorID, models.ApprovalStatus(req.Status))
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "approval status updated", doctor)
}

func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.doctorService.Delete(c.Request.Context(), doctorID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "doctor deleted", nil)
}
