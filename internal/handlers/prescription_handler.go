package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/models"
	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/internal/validators"
	"lifeline/pkg/logger"
)

type PrescriptionHandler struct {
	prescriptionService services.PrescriptionService
	logger              *logger.Logger
}

func NewPrescriptionHandler(prescriptionService services.PrescriptionService, log *logger.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionService: prescriptionService,
		logger:              log,
	}
}

// Create issues a prescription from the authenticated doctor to a patient.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var req validators.PrescriptionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid request body")
		return
	}
	if errs := validators.ValidatePrescriptionCreate(&req); errs != nil {
		utils.BadRequestResponse(c, errs.Error())
		return
	}

	patientID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		utils.BadRequestResponse(c, "invalid patient_id")
		return
	}

	items := make([]models.PrescriptionItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.PrescriptionItem{
			Medicine:  item.Medicine,
			Dosage:    item.Dosage,
			Frequency: item.Frequency,
			Duration:  item.Duration,
			Notes:     item.Notes,
		})
	}

	prescription, err := h.prescriptionService.Create(c.Request.Context(), doctorID, patientID, items)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "prescription created", prescription)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	prescriptionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	prescription, err := h.prescriptionService.GetByID(c.Request.Context(), prescriptionID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	if prescription.DoctorID != caller && prescription.PatientID != caller {
		utils.ForbiddenResponse(c)
		return
	}

	utils.SuccessResponse(c, "prescription retrieved", prescription)
}

// ListIssued lists prescriptions written by the authenticated doctor.
func (h *PrescriptionHandler) ListIssued(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)
	prescriptions, total, err := h.prescriptionService.ListByDoctor(c.Request.Context(), doctorID, params)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "prescriptions retrieved", prescriptions, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
