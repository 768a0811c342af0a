package api

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/caseops/casectl/pkg/whttp"
)

// APIError is a transport-level failure with whatever message the backend
// managed to produce.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// Spellings the backend (and its proxies) use for error messages, tried in
// order.
var messagePaths = []string{
	"message",
	"error",
	"detail",
	"error.message",
	"errors.0.message",
}

func newAPIError(res *whttp.WHTTPRes) *APIError {
	apiErr := &APIError{Status: res.StatusCode, Message: "request failed"}

	if gjson.ValidBytes(res.BodyBytes) {
		root := gjson.ParseBytes(res.BodyBytes)
		for _, path := range messagePaths {
			v := root.Get(path)
			if v.Type == gjson.String && v.Str != "" {
				apiErr.Message = v.Str
				return apiErr
			}
		}
	}

	// HTML error page from a proxy; the title beats a generic message.
	if res.HTTPTitle != "" {
		apiErr.Message = res.HTTPTitle
	}
	return apiErr
}
