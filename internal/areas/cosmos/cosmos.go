// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cosmos exposes Cosmos DB account operations as commands.
package cosmos

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/options"
)

// Account is the JSON-serializable projection of a Cosmos DB account.
type Account struct {
	Name             string `json:"name"`
	Location         string `json:"location,omitempty"`
	Kind             string `json:"kind,omitempty"`
	DocumentEndpoint string `json:"documentEndpoint,omitempty"`
	ConsistencyLevel string `json:"consistencyLevel,omitempty"`
	EnableFreeTier   bool   `json:"enableFreeTier,omitempty"`
}

// Service is the Cosmos DB surface the commands invoke.
type Service interface {
	ListAccounts(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Account, error)
	GetAccount(ctx context.Context, subscription string, resourceGroup string, account string, tenant string, retry *options.RetryPolicy) (*Account, error)
}

type service struct {
	provider *azure.ClientProvider
	clients  azure.ClientCache[*armcosmos.DatabaseAccountsClient]
}

// NewService creates the Cosmos DB service over the shared client provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider}
}

func (s *service) accountClient(
	ctx context.Context,
	subscription string,
	tenant string,
	retry *options.RetryPolicy,
) (*armcosmos.DatabaseAccountsClient, error) {
	key, err := s.provider.ClientKey(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	return azure.GetOrCreateClient(&s.clients, key, func() (*armcosmos.DatabaseAccountsClient, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armcosmos.NewDatabaseAccountsClient(subscription, cred, s.provider.ArmClientOptions(retry))
	})
}

func (s *service) ListAccounts(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Account, error) {
	client, err := s.accountClient(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	var accounts []Account
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, acct := range page.Value {
			accounts = append(accounts, toAccount(acct))
		}
	}

	return accounts, nil
}

func (s *service) GetAccount(
	ctx context.Context,
	subscription string,
	resourceGroup string,
	account string,
	tenant string,
	retry *options.RetryPolicy,
) (*Account, error) {
	client, err := s.accountClient(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	result, err := client.Get(ctx, resourceGroup, account, nil)
	if err != nil {
		return nil, err
	}

	projected := toAccount(&result.DatabaseAccountGetResults)
	return &projected, nil
}

func toAccount(acct *armcosmos.DatabaseAccountGetResults) Account {
	account := Account{}

	if acct.Name != nil {
		account.Name = *acct.Name
	}
	if acct.Location != nil {
		account.Location = *acct.Location
	}
	if acct.Kind != nil {
		account.Kind = string(*acct.Kind)
	}

	props := acct.Properties
	if props == nil {
		return account
	}

	if props.DocumentEndpoint != nil {
		account.DocumentEndpoint = *props.DocumentEndpoint
	}
	if props.ConsistencyPolicy != nil && props.ConsistencyPolicy.DefaultConsistencyLevel != nil {
		account.ConsistencyLevel = string(*props.ConsistencyPolicy.DefaultConsistencyLevel)
	}
	if props.EnableFreeTier != nil {
		account.EnableFreeTier = *props.EnableFreeTier
	}

	return account
}
