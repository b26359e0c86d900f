package vcenter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx vCenter response
type APIError struct {
	StatusCode int
	ErrorType  string
	Messages   []string
	Body       string
}

// errorResponse is the vCenter /api error payload
type errorResponse struct {
	ErrorType string `json:"error_type"`
	Messages  []struct {
		ID             string `json:"id"`
		DefaultMessage string `json:"default_message"`
	} `json:"messages"`
}

func newAPIError(resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(data)),
	}

	var payload errorResponse
	if err := json.Unmarshal(data, &payload); err == nil {
		apiErr.ErrorType = payload.ErrorType
		for _, m := range payload.Messages {
			if m.DefaultMessage != "" {
				apiErr.Messages = append(apiErr.Messages, m.DefaultMessage)
			}
		}
	}
	return apiErr
}

// Error implements the error interface
func (e *APIError) Error() string {
	status := fmt.Sprintf("status %d", e.StatusCode)
	if e.ErrorType != "" {
		status += " " + e.ErrorType
	}
	switch {
	case len(e.Messages) > 0:
		return fmt.Sprintf("%s: %s", status, strings.Join(e.Messages, "; "))
	case e.Body != "":
		return fmt.Sprintf("%s: %s", status, e.Body)
	}
	return status
}
