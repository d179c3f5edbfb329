package response

import (
	"net/http"

	"voyago/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError renders any error through the taxonomy. Errors that are not
// an *apperrors.Error are treated as unclassified storage failures so no
// raw internal detail ever reaches the caller.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr == nil {
		RespondJSON(c, "error", http.StatusInternalServerError, "internal error", nil, gin.H{
			"kind": apperrors.KindStorage,
			"code": "STORAGE_ERROR",
		})
		return
	}

	RespondJSON(c, "error", appErr.HTTPStatus(), appErr.Message, nil, gin.H{
		"kind":    appErr.Kind,
		"code":    appErr.Code,
		"details": appErr.Details,
	})
}
