// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azure

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type fakeCredential struct {
	tenantID string
}

func (c *fakeCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "fake-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type staticResolver struct {
	mapping map[string]string
}

func (r *staticResolver) ResolveTenant(ctx context.Context, hint string) (string, error) {
	if id, ok := r.mapping[hint]; ok {
		return id, nil
	}
	return "", errors.New("tenant " + hint + " was not found")
}

func newTestProvider(t *testing.T, opts ...ProviderOption) (*ClientProvider, *int) {
	t.Helper()

	calls := 0
	factory := func(tenantID string) (azcore.TokenCredential, error) {
		calls++
		return &fakeCredential{tenantID: tenantID}, nil
	}

	opts = append([]ProviderOption{WithCredentialFactory(factory)}, opts...)
	return NewClientProvider(log.New(io.Discard), "azmcp/test", opts...), &calls
}

func TestProviderCredentialCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses credential for same tenant", func(t *testing.T) {
		provider, calls := newTestProvider(t)

		first, err := provider.Credential(ctx, "tenant-1")
		require.NoError(t, err)

		second, err := provider.Credential(ctx, "tenant-1")
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, *calls)
	})

	t.Run("keeps tenants isolated", func(t *testing.T) {
		provider, calls := newTestProvider(t)

		first, err := provider.Credential(ctx, "tenant-1")
		require.NoError(t, err)

		second, err := provider.Credential(ctx, "tenant-2")
		require.NoError(t, err)

		require.NotSame(t, first, second)
		require.Equal(t, 2, *calls)
	})

	t.Run("resolved hints share one credential", func(t *testing.T) {
		resolver := &staticResolver{mapping: map[string]string{
			"contoso.onmicrosoft.com": "tenant-1",
			"tenant-1":                "tenant-1",
		}}
		provider, calls := newTestProvider(t, WithTenantResolver(resolver))

		first, err := provider.Credential(ctx, "contoso.onmicrosoft.com")
		require.NoError(t, err)

		second, err := provider.Credential(ctx, "tenant-1")
		require.NoError(t, err)

		require.Same(t, first, second)
		require.Equal(t, 1, *calls)
	})

	t.Run("wraps factory failures", func(t *testing.T) {
		provider := NewClientProvider(log.New(io.Discard), "azmcp/test",
			WithCredentialFactory(func(string) (azcore.TokenCredential, error) {
				return nil, errors.New("no auth available")
			}))

		_, err := provider.Credential(ctx, "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to get credential")
	})

	t.Run("resolver failures surface", func(t *testing.T) {
		provider, _ := newTestProvider(t, WithTenantResolver(&staticResolver{}))

		_, err := provider.Credential(ctx, "unknown-tenant")
		require.Error(t, err)
		require.Contains(t, err.Error(), "not found")
	})
}

func TestProviderClientKey(t *testing.T) {
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	t.Run("varies by retry policy", func(t *testing.T) {
		retries := 3
		withRetry, err := provider.ClientKey(ctx, "sub-1", "tenant-1", &options.RetryPolicy{MaxRetries: &retries})
		require.NoError(t, err)

		without, err := provider.ClientKey(ctx, "sub-1", "tenant-1", nil)
		require.NoError(t, err)

		require.NotEqual(t, withRetry, without)
	})

	t.Run("stable for equal inputs", func(t *testing.T) {
		first, err := provider.ClientKey(ctx, "sub-1", "tenant-1", nil)
		require.NoError(t, err)

		second, err := provider.ClientKey(ctx, "sub-1", "tenant-1", nil)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})
}

func TestProviderArmClientOptions(t *testing.T) {
	provider, _ := newTestProvider(t)

	retries := 5
	clientOptions := provider.ArmClientOptions(&options.RetryPolicy{MaxRetries: &retries})

	require.NotNil(t, clientOptions)
	require.Equal(t, int32(5), clientOptions.Retry.MaxRetries)
	require.NotEmpty(t, clientOptions.PerCallPolicies)
}
