package api

import (
	"errors"
	"fmt"
	"net/http"
)

// FallbackMessage is shown when neither the server nor the transport produced
// anything readable.
const FallbackMessage = "Something went wrong"

// Error is a non-2xx response from the remote API.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
}

// IsStatus reports whether err is an API error with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// UserMessage picks what to show in a notification: the server's message,
// then the error text, then FallbackMessage.
func UserMessage(err error) string {
	if err == nil {
		return FallbackMessage
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
