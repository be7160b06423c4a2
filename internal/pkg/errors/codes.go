package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes for different modules
const (
	// Success
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrTooManyRequests = 1006
	ErrBadRequest      = 1007
	ErrServiceUnavail  = 1008

	// Chat errors (2000-2999)
	ErrChatEmptyMessage     = 2000
	ErrChatFileTooLarge     = 2001
	ErrChatTooManyFiles     = 2002
	ErrChatUploadFailed     = 2003
	ErrChatCompletionFailed = 2004
	ErrChatStagingFailed    = 2005
)

// codeMap maps error codes to their details
var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	// Common errors
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	// Chat errors
	ErrChatEmptyMessage:     {ErrChatEmptyMessage, http.StatusBadRequest, "Message text is required when no file is attached"},
	ErrChatFileTooLarge:     {ErrChatFileTooLarge, http.StatusBadRequest, "Attached file exceeds size limit"},
	ErrChatTooManyFiles:     {ErrChatTooManyFiles, http.StatusBadRequest, "At most one file can be attached per message"},
	ErrChatUploadFailed:     {ErrChatUploadFailed, http.StatusBadGateway, "Failed to upload attachment"},
	ErrChatCompletionFailed: {ErrChatCompletionFailed, http.StatusBadGateway, "Completion request failed"},
	ErrChatStagingFailed:    {ErrChatStagingFailed, http.StatusInternalServerError, "Failed to store attachment"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsClientError checks if the code represents a client error (4xx)
func IsClientError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 400 && status < 500
}

// IsServerError checks if the code represents a server error (5xx)
func IsServerError(code int) bool {
	status := GetHTTPStatus(code)
	return status >= 500
}

// FormatError formats an error message with code
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
