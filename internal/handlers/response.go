package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/learneloquent/vocab-backend/internal/apierr"
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

// RespondServiceError maps a tagged service error to its HTTP status. Internal
// errors get a generic message so the cause only reaches the logs.
func RespondServiceError(c *gin.Context, err error) {
	if tagged, ok := apierr.From(err); ok {
		if tagged.Status == http.StatusInternalServerError {
			RespondError(c, tagged.Status, tagged.Code, errors.New("internal error"))
			return
		}
		RespondError(c, tagged.Status, tagged.Code, tagged.Err)
		return
	}
	RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, errors.New("internal error"))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
