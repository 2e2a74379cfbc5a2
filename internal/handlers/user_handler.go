package handlers

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type UserHandler struct {
	userService         services.UserService
	bookingService      services.BookingService
	prescriptionService services.PrescriptionService
	logger              *logger.Logger
}

func NewUserHandler(
	userService services.UserService,
	bookingService services.BookingService,
	prescriptionService services.PrescriptionService,
	log *logger.Logger,
) *UserHandler {
	return &UserHandler{
		userService:         userService,
		bookingService:      bookingService,
		prescriptionService: prescriptionService,
		logger:              log,
	}
}

// GetProfile returns the authenticated patient's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "profile retrieved", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateUserUpdate(&req); errs != nil {
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
	if req.BloodType != "" {
		updates["blood_type"] = req.BloodType
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, updates)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "profile updated", user)
}

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "account deleted", nil)
}

// GetMyBookings lists the patient's own appointments.
func (h *UserHandler) GetMyBookings(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetMyPrescriptions lists prescriptions issued to the patient.
func (h *UserHandler) GetMyPrescriptions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	prescriptions, total, err := h.prescriptionService.ListByPatient(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "prescriptions retrieved", prescriptions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// UpgradePremium opens a checkout session for the premium membership.
// The account is upgraded when the payment webhook confirms the charge.
func (h *UserHandler) UpgradePremium(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	result, err := h.bookingService.PremiumCheckout(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "checkout session created", result)
}

// ListUsers is the admin user listing, ranked by booking activity.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	users, total, err := h.userService.List(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "users retrieved", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
