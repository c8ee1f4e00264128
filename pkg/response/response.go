package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/tours-backend-go/internal/apperr"
	"github.com/jengzang/tours-backend-go/internal/logging"
)

// Response represents a standard API response
type Response struct {
	Code      int                    `json:"code"`
	Message   string                 `json:"message"`
	Data      interface{}            `json:"data,omitempty"`
	ErrorCode string                 `json:"error_code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created sends a 201 response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// NoContent sends a 204 response with an empty body
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the status of its kind. Internal
// errors are logged and their cause is not exposed.
func Error(c *gin.Context, err error) {
	appErr := apperr.As(err)
	status := appErr.HTTPStatus()

	if status >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		_ = c.Error(err)
	}

	c.JSON(status, Response{
		Code:      status,
		Message:   appErr.Message,
		ErrorCode: appErr.Code,
		Details:   appErr.Details,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, apperr.Validation("%s", message))
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, apperr.NotFound("%s", message))
}
