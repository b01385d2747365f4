package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func StatusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindInvalidTransition:
		return http.StatusConflict
	case KindWindowClosed:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

var messages = map[Kind]string{
	KindValidation:        "Invalid request.",
	KindConflict:          "Time slot is no longer free, choose another time.",
	KindWindowClosed:      "Bookings can only be changed more than one hour before they start.",
	KindNotFound:          "Resource not found.",
	KindInvalidTransition: "Booking cannot move to the requested status.",
}

// Respond maps business errors to their status and logs everything else as
// an internal failure.
func Respond(c *gin.Context, log *zap.Logger, err error, fallbackCode string) {
	if be, ok := AsBusiness(err); ok {
		Write(c, StatusFor(be.Kind), be.Code, messages[be.Kind])
		return
	}

	if log != nil {
		log.Error("request failed",
			zap.String("code", fallbackCode),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Internal(c, fallbackCode, "Unexpected error.")
}
