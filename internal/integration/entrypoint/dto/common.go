// Package dto defines data transfer objects for API requests and responses.
package dto

// SuccessResponse is the envelope for every successful API response.
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// Success wraps a payload in the success envelope.
func Success(data interface{}) SuccessResponse {
	return SuccessResponse{Status: "success", Data: data}
}

// ErrorResponse is the envelope for every failed API response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error wraps a message and optional machine-readable code in the error
// envelope.
func Error(message, code string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message, Code: code}
}
