package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lifeline/internal/services"
	"lifeline/internal/utils"
	"lifeline/pkg/logger"
)

// respondServiceError maps service-layer sentinels to HTTP statuses.
// Unrecognized errors become a generic 500: the detail goes to the log,
// never to the client.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrSlotsFull):
		utils.BadRequestResponse(c, services.ErrSlotsFull.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.BadRequestResponse(c, services.ErrInvalidCredentials.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrExternal):
		// provider message passes through so the client sees why the
		// checkout could not be created
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("External service failure")
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	default:
		log.WithError(err).WithField("request_id", c.GetString("request_id")).Error("Unhandled service error")
		utils.InternalServerErrorResponse(c)
	}
}

// callerID reads the authenticated user id set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// pathObjectID parses an object id path parameter.
func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}
