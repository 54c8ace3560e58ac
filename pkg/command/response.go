// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import "net/http"

// Response is the uniform envelope returned by every command invocation.
// Status follows HTTP semantics: 200 with Results populated on success,
// a 4xx/5xx status with Message populated on failure.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Results any    `json:"results,omitempty"`
}

// NewResponse returns an envelope in the default success state.
func NewResponse() *Response {
	return &Response{Status: http.StatusOK}
}

// SetResults records the command's typed result payload.
func (r *Response) SetResults(results any) {
	r.Results = results
}

// SetError records a failure status and message, clearing any results so
// exactly one of the two is the primary signal.
func (r *Response) SetError(status int, message string) {
	r.Status = status
	r.Message = message
	r.Results = nil
}

// Succeeded reports whether the envelope carries a 2xx status.
func (r *Response) Succeeded() bool {
	return r.Status >= 200 && r.Status < 300
}
