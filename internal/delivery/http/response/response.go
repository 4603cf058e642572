package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody is the error payload clients branch on
type ErrorBody struct {
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: requestID(c),
	})
}

// Fail sends an error response carrying a machine readable kind
func Fail(c *gin.Context, code int, kind, message string, details ...string) {
	Error(c, code, message, ErrorBody{Kind: kind, Details: details})
}

func requestID(c *gin.Context) string {
	return c.GetString("RequestID")
}
