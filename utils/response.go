package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response structure standard pour les réponses API
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// SendSuccess envoie une réponse de succès
func SendSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SendError envoie une réponse d'erreur
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// SendValidationError answers 400 with the per-field error map.
func SendValidationError(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// ValidateRequestBody binds and validates the JSON body, answering 400 itself on failure.
func ValidateRequestBody(c *gin.Context, obj interface{}) bool {
	errs, ok := BindAndValidate(c, obj)
	if !ok {
		SendValidationError(c, errs)
		return false
	}
	return true
}
