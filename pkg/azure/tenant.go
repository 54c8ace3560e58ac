// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azure

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/google/uuid"
)

// TenantResolver canonicalizes a tenant hint (id, display name or default
// domain) into a tenant id.
type TenantResolver interface {
	ResolveTenant(ctx context.Context, tenant string) (string, error)
}

// TenantsClientFactory constructs the ARM tenants client on first use. The
// client itself requires a credential, so construction is deferred until a
// hint actually needs resolving.
type TenantsClientFactory func(ctx context.Context) (*armsubscriptions.TenantsClient, error)

// armTenantResolver resolves tenant names by listing the tenants visible
// to the signed-in credential.
type armTenantResolver struct {
	mu        sync.Mutex
	client    *armsubscriptions.TenantsClient
	newClient TenantsClientFactory
}

// NewTenantResolver creates a resolver backed by the ARM tenants API.
func NewTenantResolver(newClient TenantsClientFactory) TenantResolver {
	return &armTenantResolver{newClient: newClient}
}

func (r *armTenantResolver) ResolveTenant(ctx context.Context, tenant string) (string, error) {
	if tenant == "" {
		return "", nil
	}

	// A hint that already is a tenant id needs no lookup.
	if _, err := uuid.Parse(tenant); err == nil {
		return tenant, nil
	}

	client, err := r.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("listing tenants: %w", err)
		}

		for _, t := range page.Value {
			if t.TenantID == nil {
				continue
			}
			if t.DisplayName != nil && strings.EqualFold(*t.DisplayName, tenant) {
				return *t.TenantID, nil
			}
			if t.DefaultDomain != nil && strings.EqualFold(*t.DefaultDomain, tenant) {
				return *t.TenantID, nil
			}
		}
	}

	return "", fmt.Errorf("tenant %q was not found among the tenants visible to the current credential", tenant)
}

func (r *armTenantResolver) ensureClient(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client != nil {
		return r.client, nil
	}

	client, err := r.newClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating tenants client: %w", err)
	}

	r.client = client
	return client, nil
}
