package utils

import (
	"encoding/json"
	"net/http"
)

// FieldError points a validation or processing failure at a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIResponse is the envelope every endpoint responds with.
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data"`
	Errors  []FieldError `json:"errors"`
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	TotalData int         `json:"totalData"`
	TotalPage int         `json:"totalPage"`
	Entries   interface{} `json:"entries"`
}

// SendSuccess writes a success envelope with the given status code.
func SendSuccess(w http.ResponseWriter, message string, data interface{}, statusCode int) {
	writeJSON(w, statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  []FieldError{},
	})
}

// SendError writes an error envelope with the given status code.
func SendError(w http.ResponseWriter, message string, errors []FieldError, statusCode int) {
	if errors == nil {
		errors = []FieldError{}
	}
	writeJSON(w, statusCode, APIResponse{
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  errors,
	})
}

// ServerError is the catch-all 500 response; internals stay in the logs.
func ServerError(w http.ResponseWriter, message string) {
	SendError(w, message, []FieldError{{Field: "server", Message: "An unexpected error occurred"}}, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}
