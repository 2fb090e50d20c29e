package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chris-github01/3rd-Party-Inspection-sub000/internal/services"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps the assembly failure taxonomy onto HTTP codes. On
// failure no document bytes are ever streamed.
func RespondServiceError(c *gin.Context, err error) {
	var dataErr *services.DataUnavailableError
	var convErr *services.ConversionFailedError
	var binErr *services.BinaryUnavailableError
	var mergeErr *services.MergeAbortedError
	switch {
	case errors.As(err, &dataErr):
		RespondError(c, http.StatusNotFound, "DATA_UNAVAILABLE", err)
	case errors.As(err, &convErr):
		RespondError(c, http.StatusUnprocessableEntity, "CONVERSION_FAILED", err)
	case errors.As(err, &binErr):
		RespondError(c, http.StatusBadGateway, "BINARY_UNAVAILABLE", err)
	case errors.As(err, &mergeErr):
		RespondError(c, http.StatusBadGateway, "MERGE_ABORTED", err)
	default:
		RespondError(c, http.StatusInternalServerError, "INTERNAL", err)
	}
}
