// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package appconfig exposes App Configuration store operations as commands.
package appconfig

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appconfiguration/armappconfiguration"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// Store is the JSON-serializable projection of an App Configuration store.
type Store struct {
	Name              string     `json:"name"`
	Location          string     `json:"location,omitempty"`
	Endpoint          string     `json:"endpoint,omitempty"`
	ProvisioningState string     `json:"provisioningState,omitempty"`
	CreationDate      *time.Time `json:"creationDate,omitempty"`
}

// Service lists App Configuration stores within a subscription.
type Service interface {
	ListStores(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Store, error)
}

type service struct {
	provider *azure.ClientProvider
	clients  azure.ClientCache[*armappconfiguration.ConfigurationStoresClient]
}

// NewService creates the App Configuration service over the shared client
// provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider}
}

func (s *service) ListStores(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Store, error) {
	key, err := s.provider.ClientKey(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	client, err := azure.GetOrCreateClient(&s.clients, key, func() (*armappconfiguration.ConfigurationStoresClient, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armappconfiguration.NewConfigurationStoresClient(subscription, cred, s.provider.ArmClientOptions(retry))
	})
	if err != nil {
		return nil, err
	}

	var stores []Store
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, cs := range page.Value {
			item := Store{}
			if cs.Name != nil {
				item.Name = *cs.Name
			}
			if cs.Location != nil {
				item.Location = *cs.Location
			}
			if cs.Properties != nil {
				if cs.Properties.Endpoint != nil {
					item.Endpoint = *cs.Properties.Endpoint
				}
				if cs.Properties.ProvisioningState != nil {
					item.ProvisioningState = string(*cs.Properties.ProvisioningState)
				}
				item.CreationDate = cs.Properties.CreationDate
			}
			stores = append(stores, item)
		}
	}

	return stores, nil
}

// Area registers the App Configuration command subtree.
type Area struct {
	logger  *log.Logger
	service Service
}

func NewArea(logger *log.Logger, provider *azure.ClientProvider) *Area {
	return &Area{logger: logger, service: NewService(provider)}
}

// NewAreaWithService allows tests to substitute the service.
func NewAreaWithService(logger *log.Logger, service Service) *Area {
	return &Area{logger: logger, service: service}
}

func (a *Area) Name() string { return "appconfig" }

func (a *Area) Register(root *command.Group) {
	appconfig := command.NewGroup(a.Name(),
		"App Configuration operations - Commands for listing Azure App Configuration stores.")
	root.AddSubGroup(appconfig)

	account := command.NewGroup("account", "App Configuration store operations")
	appconfig.AddSubGroup(account)
	account.AddCommand(NewAccountListCommand(a.logger.With("command", "appconfig_account_list"), a.service))
}

// AccountListCommand lists App Configuration stores in a subscription.
type AccountListCommand struct {
	logger  *log.Logger
	service Service
}

func NewAccountListCommand(logger *log.Logger, service Service) *AccountListCommand {
	return &AccountListCommand{logger: logger, service: service}
}

func (c *AccountListCommand) Name() string { return "list" }

func (c *AccountListCommand) Title() string { return "List App Configuration Stores" }

func (c *AccountListCommand) Description() string {
	return heredoc.Doc(`
		List all App Configuration stores in a subscription. Returns store names,
		locations and endpoints as a JSON array.`)
}

func (c *AccountListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *AccountListCommand) Options() []*command.Option {
	return options.Base()
}

func (c *AccountListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)

	stores, err := c.service.ListStores(ctx, opts.Subscription, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("listing App Configuration stores failed",
			"command", "appconfig_account_list", "subscription", opts.Subscription, "error", err)
		command.WriteError(resp, err)
		return resp
	}

	if stores == nil {
		stores = []Store{}
	}
	resp.SetResults(accountListResult{Stores: stores})
	return resp
}

type accountListResult struct {
	Stores []Store `json:"stores"`
}
