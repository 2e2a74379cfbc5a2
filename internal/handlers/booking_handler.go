package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type BookingHandler struct {
	bookingService services.BookingService
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         log,
	}
}

// Checkout opens a payment session for an appointment with the doctor in
// the path. The booking is recorded as pending payment until the webhook
// confirms it.
func (h *BookingHandler) Checkout(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	doctorID, ok := pathObjectID(c, "doctorId")
	if !ok {
		return
	}

	var req validators.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateCheckout(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	date, err := utils.ParseAppointmentDate(req.AppointmentDate)
	if err != nil {
		utils.BadRequestResponse(c, "invalid appointment date")
		return
	}

	result, err := h.bookingService.Checkout(c.Request.Context(), userID, doctorID, date, req.AppointmentTime)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "checkout session created", result)
}

// Webhook receives payment provider callbacks. The raw body is needed for
// signature verification, so it is read before any binding.
func (h *BookingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		utils.BadRequestResponse(c, "unreadable payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		signature = c.GetHeader("X-Razorpay-Signature")
	}

	if err := h.bookingService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "webhook processed", nil)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	// only the two parties may read a booking
	if booking.UserID != caller && booking.DoctorID != caller {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "booking retrieved", booking)
}

func (h *BookingHandler) Approve(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.Approve(c.Request.Context(), bookingID, doctorID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "booking approved", booking)
}

func (h *BookingHandler) Reject(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.Reject(c.Request.Context(), bookingID, doctorID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "booking rejected", booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "booking cancelled", booking)
}
