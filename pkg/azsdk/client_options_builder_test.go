// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azsdk

import (
	"context"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/stretchr/testify/require"
)

type captureTransport struct {
	request *http.Request
}

func (t *captureTransport) Do(req *http.Request) (*http.Response, error) {
	t.request = req
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       http.NoBody,
		Request:    req,
	}, nil
}

func TestClientOptionsBuilder(t *testing.T) {
	t.Run("empty builder yields defaults", func(t *testing.T) {
		clientOptions := NewClientOptionsBuilder().BuildArmClientOptions()
		require.Nil(t, clientOptions.Transport)
		require.Empty(t, clientOptions.PerCallPolicies)
		require.Empty(t, clientOptions.PerRetryPolicies)
	})

	t.Run("user agent becomes a per call policy", func(t *testing.T) {
		clientOptions := NewClientOptionsBuilder().
			SetUserAgent("azmcp/1.0").
			BuildArmClientOptions()

		require.Len(t, clientOptions.PerCallPolicies, 1)
	})

	t.Run("clearing the user agent removes the policy", func(t *testing.T) {
		clientOptions := NewClientOptionsBuilder().
			SetUserAgent("azmcp/1.0").
			SetUserAgent("").
			BuildArmClientOptions()

		require.Empty(t, clientOptions.PerCallPolicies)
	})

	t.Run("carries transport and retry options", func(t *testing.T) {
		transport := &captureTransport{}
		retry := policy.RetryOptions{MaxRetries: 7}

		clientOptions := NewClientOptionsBuilder().
			WithTransport(transport).
			WithRetryOptions(retry).
			BuildCoreClientOptions()

		require.Equal(t, transport, clientOptions.Transport)
		require.Equal(t, int32(7), clientOptions.Retry.MaxRetries)
	})
}

func TestUserAgentPolicy(t *testing.T) {
	t.Run("appends to the user agent header", func(t *testing.T) {
		transport := &captureTransport{}
		pipeline := runtime.NewPipeline("test", "1.0.0", runtime.PipelineOptions{}, &policy.ClientOptions{
			Transport:       transport,
			PerCallPolicies: []policy.Policy{NewUserAgentPolicy("azmcp/1.0 (Go; linux/amd64)")},
		})

		req, err := runtime.NewRequest(context.Background(), http.MethodGet, "https://management.azure.com/")
		require.NoError(t, err)

		_, err = pipeline.Do(req)
		require.NoError(t, err)

		require.NotNil(t, transport.request)
		require.Contains(t, transport.request.Header.Get("User-Agent"), "azmcp/1.0 (Go; linux/amd64)")
	})

	t.Run("empty user agent leaves the header alone", func(t *testing.T) {
		transport := &captureTransport{}
		pipeline := runtime.NewPipeline("test", "1.0.0", runtime.PipelineOptions{}, &policy.ClientOptions{
			Transport:       transport,
			PerCallPolicies: []policy.Policy{NewUserAgentPolicy("  ")},
		})

		req, err := runtime.NewRequest(context.Background(), http.MethodGet, "https://management.azure.com/")
		require.NoError(t, err)

		_, err = pipeline.Do(req)
		require.NoError(t, err)

		require.NotContains(t, transport.request.Header.Get("User-Agent"), ",")
	})
}
