// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package subscription exposes Azure subscription discovery as commands.
package subscription

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/options"
)

// Subscription is the JSON-serializable projection of a subscription.
type Subscription struct {
	ID       string `json:"subscriptionId"`
	Name     string `json:"displayName,omitempty"`
	State    string `json:"state,omitempty"`
	TenantID string `json:"tenantId,omitempty"`
}

// Service lists the subscriptions visible to the current credential.
type Service interface {
	ListSubscriptions(ctx context.Context, tenant string, retry *options.RetryPolicy) ([]Subscription, error)
}

type service struct {
	provider *azure.ClientProvider
	clients  azure.ClientCache[*armsubscriptions.Client]
}

// NewService creates the subscription service over the shared client
// provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider}
}

func (s *service) ListSubscriptions(ctx context.Context, tenant string, retry *options.RetryPolicy) ([]Subscription, error) {
	key, err := s.provider.ClientKey(ctx, "", tenant, retry)
	if err != nil {
		return nil, err
	}

	client, err := azure.GetOrCreateClient(&s.clients, key, func() (*armsubscriptions.Client, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armsubscriptions.NewClient(cred, s.provider.ArmClientOptions(retry))
	})
	if err != nil {
		return nil, err
	}

	var subscriptions []Subscription
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, sub := range page.Value {
			item := Subscription{}
			if sub.SubscriptionID != nil {
				item.ID = *sub.SubscriptionID
			}
			if sub.DisplayName != nil {
				item.Name = *sub.DisplayName
			}
			if sub.State != nil {
				item.State = string(*sub.State)
			}
			if sub.TenantID != nil {
				item.TenantID = *sub.TenantID
			}
			subscriptions = append(subscriptions, item)
		}
	}

	return subscriptions, nil
}
