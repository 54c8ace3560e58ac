// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package group

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	groups []ResourceGroup
	err    error
}

func (f *fakeService) ListGroups(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]ResourceGroup, error) {
	return f.groups, f.err
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("returns resource groups", func(t *testing.T) {
		service := &fakeService{groups: []ResourceGroup{
			{Name: "rg-prod", Location: "eastus2", ProvisioningState: "Succeeded"},
		}}
		cmd := NewListCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{"subscription": "sub-1"})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result, ok := resp.Results.(listResult)
		require.True(t, ok)
		require.Len(t, result.Groups, 1)
		require.Equal(t, "rg-prod", result.Groups[0].Name)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		cmd := NewListCommand(logger, &fakeService{})

		parse := command.ParseArguments(cmd.Options(), map[string]any{"subscription": "sub-1"})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result := resp.Results.(listResult)
		require.NotNil(t, result.Groups)
		require.Empty(t, result.Groups)
	})

	t.Run("missing subscription fails validation", func(t *testing.T) {
		cmd := NewListCommand(logger, &fakeService{})

		resp := cmd.Execute(ctx, command.ParseArguments(cmd.Options(), map[string]any{}))

		require.Equal(t, http.StatusBadRequest, resp.Status)
		require.Contains(t, resp.Message, "required")
	})
}

func TestAreaRegister(t *testing.T) {
	area := NewAreaWithService(log.New(io.Discard), &fakeService{})

	root := command.NewGroup("azmcp", "root")
	area.Register(root)

	_, ok := root.Resolve([]string{"group", "list"})
	require.True(t, ok)
}
