// Package response renders the API's JSON envelopes. Success bodies
// carry {status, message, data, metadata}; error bodies nest the
// message, HTTP status and optional field details under "error".
package response

import "github.com/gofiber/fiber/v2"

type Envelope struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
	Metadata interface{} `json:"metadata,omitempty"`
}

type ErrorEnvelope struct {
	Status string    `json:"status"`
	Error  ErrorInfo `json:"error"`
}

type ErrorInfo struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Details    interface{} `json:"details,omitempty"`
}

// Metadata defaults to an empty object rather than null so clients can
// index into it unconditionally.
func envelope(message string, data, metadata interface{}) Envelope {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	return Envelope{Status: "success", Message: message, Data: data, Metadata: metadata}
}

// Success writes a 200 envelope.
func Success(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return c.Status(fiber.StatusOK).JSON(envelope(message, data, metadata))
}

// SuccessCreated writes a 201 envelope.
func SuccessCreated(c *fiber.Ctx, message string, data interface{}, metadata interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(envelope(message, data, metadata))
}

// Error writes an error envelope with the given HTTP status. Details
// holds per-field validation messages when the caller has them.
func Error(c *fiber.Ctx, message string, statusCode int, details interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}
	return c.Status(statusCode).JSON(ErrorEnvelope{
		Status: "error",
		Error:  ErrorInfo{Message: message, StatusCode: statusCode, Details: details},
	})
}
