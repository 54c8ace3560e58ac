// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package azure

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/stretchr/testify/require"
)

type tenantListTransport struct {
	body  string
	calls int
}

func (t *tenantListTransport) Do(req *http.Request) (*http.Response, error) {
	t.calls++
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(t.body))),
		Request:    req,
	}, nil
}

type stubCredential struct{}

func (stubCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "stub", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func newStubbedResolver(t *testing.T, transport *tenantListTransport) TenantResolver {
	t.Helper()

	return NewTenantResolver(func(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
		return armsubscriptions.NewTenantsClient(stubCredential{}, &arm.ClientOptions{
			ClientOptions: policy.ClientOptions{Transport: transport},
		})
	})
}

func TestTenantResolver(t *testing.T) {
	ctx := context.Background()

	const tenantPage = `{
		"value": [
			{
				"id": "/tenants/11111111-1111-1111-1111-111111111111",
				"tenantId": "11111111-1111-1111-1111-111111111111",
				"displayName": "Contoso",
				"defaultDomain": "contoso.onmicrosoft.com"
			},
			{
				"id": "/tenants/22222222-2222-2222-2222-222222222222",
				"tenantId": "22222222-2222-2222-2222-222222222222",
				"displayName": "Fabrikam",
				"defaultDomain": "fabrikam.onmicrosoft.com"
			}
		]
	}`

	t.Run("empty hint needs no lookup", func(t *testing.T) {
		resolver := NewTenantResolver(func(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
			t.Fatal("client must not be constructed for an empty hint")
			return nil, nil
		})

		id, err := resolver.ResolveTenant(ctx, "")
		require.NoError(t, err)
		require.Empty(t, id)
	})

	t.Run("tenant id passes through", func(t *testing.T) {
		resolver := NewTenantResolver(func(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
			t.Fatal("client must not be constructed for an id hint")
			return nil, nil
		})

		id, err := resolver.ResolveTenant(ctx, "11111111-1111-1111-1111-111111111111")
		require.NoError(t, err)
		require.Equal(t, "11111111-1111-1111-1111-111111111111", id)
	})

	t.Run("resolves display name", func(t *testing.T) {
		resolver := newStubbedResolver(t, &tenantListTransport{body: tenantPage})

		id, err := resolver.ResolveTenant(ctx, "contoso")
		require.NoError(t, err)
		require.Equal(t, "11111111-1111-1111-1111-111111111111", id)
	})

	t.Run("resolves default domain", func(t *testing.T) {
		resolver := newStubbedResolver(t, &tenantListTransport{body: tenantPage})

		id, err := resolver.ResolveTenant(ctx, "FABRIKAM.ONMICROSOFT.COM")
		require.NoError(t, err)
		require.Equal(t, "22222222-2222-2222-2222-222222222222", id)
	})

	t.Run("unknown hint errors", func(t *testing.T) {
		resolver := newStubbedResolver(t, &tenantListTransport{body: tenantPage})

		_, err := resolver.ResolveTenant(ctx, "northwind")
		require.Error(t, err)
		require.Contains(t, err.Error(), `tenant "northwind" was not found`)
	})

	t.Run("client factory failures surface", func(t *testing.T) {
		resolver := NewTenantResolver(func(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
			return nil, errors.New("no credential")
		})

		_, err := resolver.ResolveTenant(ctx, "contoso")
		require.Error(t, err)
		require.Contains(t, err.Error(), "creating tenants client")
	})
}
