package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/service"
)

func HandleServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		ValidationResponse(c, http.StatusBadRequest, ve.Error(), ve.Fields)
	} else if errors.Is(err, service.ErrAuthorNotFound) ||
		errors.Is(err, service.ErrRoomNotFound) ||
		errors.Is(err, service.ErrMessageNotFound) {
		ErrorResponse(c, http.StatusNotFound, err.Error())
	} else {
		// Log the internal error for debugging
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unknown error occurred.")
	}
}
