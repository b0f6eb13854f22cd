package errmap

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the uniform HTTP error body.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Render writes err as the uniform JSON error response and aborts the
// request. Unclassified errors render as internal server errors with a
// generic message so internal causes never reach the client.
func Render(c *gin.Context, err error) {
	kind := KindOf(err)

	message := genericInternalMessage
	if classified := AsError(err); classified != nil {
		switch kind {
		case KindInternal, KindUnhandled:
			// keep the generic message
		default:
			message = classified.Message
		}
	}

	c.AbortWithStatusJSON(kind.HTTPStatus(), ErrorResponse{
		Status:  "error",
		Message: message,
	})
}

// AsError extracts the classified error from err, or nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	return nil
}
