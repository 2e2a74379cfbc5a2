package handlers

import (
	"github.com/gin-gonic/gin"

	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	logger        *logger.Logger
}

func NewReviewHandler(reviewService services.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log,
	}
}

// Create posts a review for the doctor in the path on behalf of the
// authenticated patient. The doctor's aggregate rating is recomputed
// before the response is sent.
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	doctorID, ok := pathObjectID(c, "doctorId")
	if !ok {
		return
	}

	var req validators.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidateReviewCreate(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), doctorID, userID, req.ReviewText, req.Rating)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "review submitted", review)
}

func (h *ReviewHandler) ListByDoctor(c *gin.Context) {
	doctorID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.ListByDoctor(c.Request.Context(), doctorID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "reviews retrieved", reviews, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *ReviewHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.ListAll(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "reviews retrieved", reviews, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Delete removes a review. Patients can delete their own reviews, admins
// can delete any.
func (h *ReviewHandler) Delete(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	reviewID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	isAdmin := c.GetString("role") == "admin"
	if err := h.reviewService.Delete(c.Request.Context(), reviewID, caller, isAdmin); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "review deleted", nil)
}
