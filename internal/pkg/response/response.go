// Package response renders the JSON envelope shared by every handler:
// {"success": true, "data": ...} on the happy path and
// {"success": false, "error": {"code", "message", "details"}} on failure.
// Error codes are stable identifiers for clients; messages are free text.
package response

import "github.com/gin-gonic/gin"

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, successEnvelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, errorEnvelope{Success: false, Error: errorBody{Code: code, Message: message}})
}

// ErrorWithDetails attaches a machine-readable payload to the error body,
// e.g. the blocking payment count on a refused cancellation.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, errorEnvelope{Success: false, Error: errorBody{Code: code, Message: message, Details: details}})
}
