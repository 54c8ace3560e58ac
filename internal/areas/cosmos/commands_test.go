// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cosmos

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
	accounts []Account
	account  *Account
	err      error

	lastResourceGroup string
	lastAccount       string
}

func (f *fakeService) ListAccounts(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Account, error) {
	return f.accounts, f.err
}

func (f *fakeService) GetAccount(ctx context.Context, subscription string, resourceGroup string, account string, tenant string, retry *options.RetryPolicy) (*Account, error) {
	f.lastResourceGroup = resourceGroup
	f.lastAccount = account
	return f.account, f.err
}

func TestAccountListCommand(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("returns accounts", func(t *testing.T) {
		service := &fakeService{accounts: []Account{
			{Name: "orders-db", Kind: "GlobalDocumentDB", ConsistencyLevel: "Session"},
		}}
		cmd := NewAccountListCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{"subscription": "sub-1"})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result, ok := resp.Results.(accountListResult)
		require.True(t, ok)
		require.Len(t, result.Accounts, 1)
		require.Equal(t, "orders-db", result.Accounts[0].Name)
	})

	t.Run("empty result is an empty array", func(t *testing.T) {
		cmd := NewAccountListCommand(logger, &fakeService{})

		parse := command.ParseArguments(cmd.Options(), map[string]any{"subscription": "sub-1"})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result := resp.Results.(accountListResult)
		require.NotNil(t, result.Accounts)
		require.Empty(t, result.Accounts)
	})
}

func TestAccountShowCommand(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("returns the account", func(t *testing.T) {
		service := &fakeService{account: &Account{Name: "orders-db", DocumentEndpoint: "https://orders-db.documents.azure.com:443/"}}
		cmd := NewAccountShowCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{
			"subscription":   "sub-1",
			"resource-group": "rg-data",
			"account":        "orders-db",
		})
		resp := cmd.Execute(ctx, parse)

		require.True(t, resp.Succeeded())
		result, ok := resp.Results.(accountShowResult)
		require.True(t, ok)
		require.Equal(t, "orders-db", result.Account.Name)
		require.Equal(t, "rg-data", service.lastResourceGroup)
		require.Equal(t, "orders-db", service.lastAccount)
	})

	t.Run("requires resource group and account", func(t *testing.T) {
		cmd := NewAccountShowCommand(logger, &fakeService{})

		resp := cmd.Execute(ctx, command.ParseArguments(cmd.Options(), map[string]any{"subscription": "sub-1"}))

		require.Equal(t, http.StatusBadRequest, resp.Status)
		require.Contains(t, resp.Message, "--resource-group")
		require.Contains(t, resp.Message, "--account")
	})

	t.Run("not found gets the account guidance", func(t *testing.T) {
		service := &fakeService{err: &azcore.ResponseError{StatusCode: http.StatusNotFound}}
		cmd := NewAccountShowCommand(logger, service)

		parse := command.ParseArguments(cmd.Options(), map[string]any{
			"subscription":   "sub-1",
			"resource-group": "rg-data",
			"account":        "missing",
		})
		resp := cmd.Execute(ctx, parse)

		require.Equal(t, http.StatusNotFound, resp.Status)
		require.Contains(t, resp.Message, "Cosmos DB account not found")
	})
}

func TestAreaRegister(t *testing.T) {
	area := NewAreaWithService(log.New(io.Discard), &fakeService{})

	root := command.NewGroup("azmcp", "root")
	area.Register(root)

	for _, path := range [][]string{
		{"cosmos", "account", "list"},
		{"cosmos", "account", "show"},
	} {
		_, ok := root.Resolve(path)
		require.True(t, ok, "path %v not registered", path)
	}
}
