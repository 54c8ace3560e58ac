// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// TroubleshootingURL is appended to unclassified failures so operators can
// locate documentation. The link is part of the user-visible contract.
const TroubleshootingURL = "https://aka.ms/azmcp/troubleshooting"

// ValidationError marks caller input that failed validation beyond the
// structural checks Validate performs. Maps to a 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NotFoundError marks a target resource that does not exist. Maps to a 404.
type NotFoundError struct {
	Detail string
}

func (e *NotFoundError) Error() string {
	return e.Detail
}

// Matcher special-cases one known failure shape for a command. Matchers are
// consulted in order before the shared default classification, letting each
// resource area recognize its own error surface without inheritance.
type Matcher struct {
	// Matches reports whether this matcher applies to the error.
	Matches func(err error) bool
	// Status is the response status to use on a match.
	Status int
	// Message produces the response message. When nil the error text is
	// used as-is.
	Message func(err error) string
}

// MatchStatus matches an *azcore.ResponseError carrying the given HTTP
// status code, the common case for per-command overrides.
func MatchStatus(status int) func(err error) bool {
	return func(err error) bool {
		var respErr *azcore.ResponseError
		return errors.As(err, &respErr) && respErr.StatusCode == status
	}
}

// WriteError classifies err onto the response. Command-specific matchers run
// first; otherwise service-call failures keep their HTTP status, validation
// errors map to 400, not-found to 404, and anything unrecognized becomes a
// 500 with the original error text plus the troubleshooting pointer.
func WriteError(resp *Response, err error, matchers ...Matcher) {
	for _, m := range matchers {
		if m.Matches != nil && m.Matches(err) {
			message := err.Error()
			if m.Message != nil {
				message = m.Message(err)
			}
			resp.SetError(m.Status, message)
			return
		}
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		status := respErr.StatusCode
		if status == http.StatusUnauthorized {
			status = http.StatusForbidden
		}
		resp.SetError(status, statusMessage(respErr))
		return
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		resp.SetError(http.StatusBadRequest, validationErr.Error())
		return
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		resp.SetError(http.StatusNotFound, notFoundErr.Error())
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		resp.SetError(http.StatusRequestTimeout, err.Error())
		return
	}

	resp.SetError(
		http.StatusInternalServerError,
		fmt.Sprintf("%s. To troubleshoot, see %s", err.Error(), TroubleshootingURL),
	)
}

func statusMessage(respErr *azcore.ResponseError) string {
	switch respErr.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Sprintf("Request was throttled by the service. Wait before retrying. Details: %s", respErr.Error())
	case http.StatusForbidden, http.StatusUnauthorized:
		return fmt.Sprintf("Authorization failed. Details: %s", respErr.Error())
	default:
		return respErr.Error()
	}
}
