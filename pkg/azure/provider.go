// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package azure provides the shared client provider every resource-area
// service builds on: tenant-scoped credential acquisition with caching,
// ARM client option construction with the shared pipeline policies, and a
// generic client cache keyed by tenant and retry configuration.
package azure

import (
	"context"
	"fmt"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/azure/azmcp/pkg/azsdk"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// CredentialFactory builds a token credential scoped to a tenant. The
// default uses the azidentity chained credential; tests substitute fakes.
type CredentialFactory func(tenantID string) (azcore.TokenCredential, error)

func defaultCredentialFactory(tenantID string) (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{
		TenantID: tenantID,
	})
}

// ClientProvider resolves credentials and assembles ARM client options for
// the per-area services. Credentials are cached per resolved tenant id;
// the per-area typed clients are cached separately via ClientCache keyed by
// (subscription, tenant, retry policy).
type ClientProvider struct {
	tenants     TenantResolver
	logger      *log.Logger
	userAgent   string
	credFactory CredentialFactory
	transport   policy.Transporter

	mu          sync.Mutex
	credentials map[string]azcore.TokenCredential
}

// ProviderOption configures a ClientProvider.
type ProviderOption func(*ClientProvider)

// WithCredentialFactory overrides credential construction, primarily for
// tests.
func WithCredentialFactory(factory CredentialFactory) ProviderOption {
	return func(p *ClientProvider) {
		p.credFactory = factory
	}
}

// WithTransport overrides the HTTP transport, supporting mocked pipelines
// in unit tests.
func WithTransport(transport policy.Transporter) ProviderOption {
	return func(p *ClientProvider) {
		p.transport = transport
	}
}

// WithTenantResolver attaches a tenant resolver. Without one, tenant hints
// are passed through unresolved.
func WithTenantResolver(resolver TenantResolver) ProviderOption {
	return func(p *ClientProvider) {
		p.tenants = resolver
	}
}

// NewClientProvider creates a provider using the given user agent for all
// outgoing requests.
func NewClientProvider(logger *log.Logger, userAgent string, opts ...ProviderOption) *ClientProvider {
	provider := &ClientProvider{
		logger:      logger,
		userAgent:   userAgent,
		credFactory: defaultCredentialFactory,
		credentials: map[string]azcore.TokenCredential{},
	}

	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// ResolveTenant canonicalizes a tenant hint to a tenant id. No-op when no
// hint is given or no resolver is configured.
func (p *ClientProvider) ResolveTenant(ctx context.Context, tenant string) (string, error) {
	if tenant == "" || p.tenants == nil {
		return tenant, nil
	}
	return p.tenants.ResolveTenant(ctx, tenant)
}

// Credential returns a token credential for the given tenant hint, reusing
// a cached credential when the resolved tenant id matches. The
// read-check-update sequence is serialized so concurrent requests for
// different tenants never observe each other's entries.
func (p *ClientProvider) Credential(ctx context.Context, tenant string) (azcore.TokenCredential, error) {
	tenantID, err := p.ResolveTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if cred, ok := p.credentials[tenantID]; ok {
		return cred, nil
	}

	cred, err := p.credFactory(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	p.logger.Debug("created credential", "tenant", tenantID)
	p.credentials[tenantID] = cred
	return cred, nil
}

// ArmClientOptions builds ARM client options carrying the shared user-agent
// policy plus the caller's retry policy. Only explicitly set retry fields
// override the SDK defaults.
func (p *ClientProvider) ArmClientOptions(retry *options.RetryPolicy) *arm.ClientOptions {
	builder := azsdk.NewClientOptionsBuilder().SetUserAgent(p.userAgent)
	if p.transport != nil {
		builder = builder.WithTransport(p.transport)
	}

	clientOptions := builder.BuildArmClientOptions()
	retry.Apply(&clientOptions.Retry)
	return clientOptions
}

// ClientKey builds the cache key for a typed area client. Custom client
// options cannot be compared for equality; callers holding any must bypass
// their cache and construct a fresh client.
func (p *ClientProvider) ClientKey(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) (string, error) {
	tenantID, err := p.ResolveTenant(ctx, tenant)
	if err != nil {
		return "", err
	}
	return CacheKey(subscription, tenantID, retry.CacheKey()), nil
}
