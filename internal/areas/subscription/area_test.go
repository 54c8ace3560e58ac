// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package subscription

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	subscriptions []Subscription
	err           error
	lastTenant    string
}

func (f *fakeService) ListSubscriptions(ctx context.Context, tenant string, retry *options.RetryPolicy) ([]Subscription, error) {
	f.lastTenant = tenant
	return f.subscriptions, f.err
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("subscription is not required", func(t *testing.T) {
		service := &fakeService{subscriptions: []Subscription{
			{ID: "sub-1", Name: "Production", State: "Enabled"},
		}}
		cmd := NewListCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result, ok := resp.Results.(listResult)
		require.True(t, ok)
		require.Len(t, result.Subscriptions, 1)
		require.Equal(t, "sub-1", result.Subscriptions[0].ID)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		cmd := NewListCommand(logger, &fakeService{})

		resp := cmd.Execute(ctx, command.ParseArguments(cmd.Options(), map[string]any{}))

		require.True(t, resp.Succeeded())
		result := resp.Results.(listResult)
		require.NotNil(t, result.Subscriptions)
		require.Empty(t, result.Subscriptions)
	})

	t.Run("tenant hint flows through", func(t *testing.T) {
		service := &fakeService{}
		cmd := NewListCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{"tenant": "tenant-1"})
		cmd.Execute(ctx, parse)

		require.Equal(t, "tenant-1", service.lastTenant)
	})

	t.Run("service errors keep their status", func(t *testing.T) {
		service := &fakeService{err: &azcore.ResponseError{StatusCode: http.StatusUnauthorized}}
		cmd := NewListCommand(logger, service)

		resp := cmd.Execute(ctx, command.ParseArguments(cmd.Options(), map[string]any{}))

		require.Equal(t, http.StatusForbidden, resp.Status)
	})
}

func TestAreaRegister(t *testing.T) {
	area := NewAreaWithService(log.New(io.Discard), &fakeService{})

	root := command.NewGroup("azmcp", "root")
	area.Register(root)

	_, ok := root.Resolve([]string{"subscription", "list"})
	require.True(t, ok)
}
