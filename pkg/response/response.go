package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with. Data is null
// on failures; Message carries the human-readable outcome.
type APIResponse[T any] struct {
	Data      T         `json:"data"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Success writes the envelope with the given status and payload.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Data:      data,
		Message:   message,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
	})
}

// Error writes a failure envelope with null data.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		Data:      nil,
		Message:   message,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
	})
}

// AbortError writes a failure envelope and aborts the handler chain.
func AbortError(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		Data:      nil,
		Message:   message,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
	})
}
