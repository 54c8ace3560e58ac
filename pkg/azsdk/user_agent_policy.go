// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azsdk carries the shared Azure SDK pipeline pieces: the
// user-agent policy applied to every outgoing request and the client
// options builder that assembles pipeline configuration for ARM and data
// plane clients.
package azsdk

import (
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

const userAgentHeaderName = "User-Agent"

// userAgentPolicy appends a product identifier to the User-Agent header of
// every request flowing through the pipeline.
type userAgentPolicy struct {
	userAgent string
}

// NewUserAgentPolicy creates a policy that appends the given user agent to
// each request. An empty userAgent yields a no-op policy.
func NewUserAgentPolicy(userAgent string) policy.Policy {
	return &userAgentPolicy{userAgent: userAgent}
}

func (p *userAgentPolicy) Do(req *policy.Request) (*http.Response, error) {
	if strings.TrimSpace(p.userAgent) != "" {
		rawRequest := req.Raw()
		userAgent, ok := rawRequest.Header[userAgentHeaderName]
		if !ok {
			userAgent = []string{}
		}
		userAgent = append(userAgent, p.userAgent)
		rawRequest.Header.Set(userAgentHeaderName, strings.Join(userAgent, ","))
	}

	return req.Next()
}
