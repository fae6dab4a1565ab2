package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshare/pkg/apperror"
)

// APIResponse is the envelope for error bodies.
type APIResponse struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Error     interface{} `json:"error,omitempty"`
}

// Error writes the error envelope and aborts the chain.
func Error(ctx *gin.Context, status int, message string, err interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	})
}

// FromError translates a service error. Causes of internal errors are
// logged and never sent to the client.
func FromError(ctx *gin.Context, logger *logrus.Logger, err error) {
	ae, ok := apperror.As(err)
	if !ok {
		ae = apperror.Internal("internal server error", err)
	}
	if ae.Kind == apperror.KindInternal && logger != nil {
		logger.WithError(err).
			WithField("request_id", ctx.GetString("request_id")).
			WithField("path", ctx.FullPath()).
			Error(ae.Message)
	}
	var details interface{}
	if ae.Details != nil {
		details = ae.Details
	} else if ae.Reason != "" {
		details = gin.H{"reason": ae.Reason}
	}
	Error(ctx, ae.Kind.Status(), ae.Message, details)
}
