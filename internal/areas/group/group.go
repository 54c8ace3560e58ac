// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package group exposes resource group operations as commands.
package group

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// ResourceGroup is the JSON-serializable projection of a resource group.
type ResourceGroup struct {
	Name              string `json:"name"`
	ID                string `json:"id,omitempty"`
	Location          string `json:"location,omitempty"`
	ProvisioningState string `json:"provisioningState,omitempty"`
}

// Service lists resource groups within a subscription.
type Service interface {
	ListGroups(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]ResourceGroup, error)
}

type service struct {
	provider *azure.ClientProvider
	clients  azure.ClientCache[*armresources.ResourceGroupsClient]
}

// NewService creates the resource group service over the shared client
// provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider}
}

func (s *service) ListGroups(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]ResourceGroup, error) {
	key, err := s.provider.ClientKey(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	client, err := azure.GetOrCreateClient(&s.clients, key, func() (*armresources.ResourceGroupsClient, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armresources.NewResourceGroupsClient(subscription, cred, s.provider.ArmClientOptions(retry))
	})
	if err != nil {
		return nil, err
	}

	var groups []ResourceGroup
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, rg := range page.Value {
			item := ResourceGroup{}
			if rg.Name != nil {
				item.Name = *rg.Name
			}
			if rg.ID != nil {
				item.ID = *rg.ID
			}
			if rg.Location != nil {
				item.Location = *rg.Location
			}
			if rg.Properties != nil && rg.Properties.ProvisioningState != nil {
				item.ProvisioningState = *rg.Properties.ProvisioningState
			}
			groups = append(groups, item)
		}
	}

	return groups, nil
}

// Area registers the resource group command subtree.
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

func (a *Area) Name() string { return "group" }

func (a *Area) Register(root *command.Group) {
	group := command.NewGroup(a.Name(),
		"Resource group operations - Commands for listing Azure resource groups in a subscription.")
	root.AddSubGroup(group)

	group.AddCommand(NewListCommand(a.logger.With("command", "group_list"), a.service))
}

// ListCommand lists the resource groups in a subscription.
type ListCommand struct {
	logger  *log.Logger
	service Service
}

func NewListCommand(logger *log.Logger, service Service) *ListCommand {
	return &ListCommand{logger: logger, service: service}
}

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Title() string { return "List Resource Groups" }

func (c *ListCommand) Description() string {
	return heredoc.Doc(`
		List all resource groups in a subscription. Returns the name, location and
		provisioning state of each resource group as a JSON array.`)
}

func (c *ListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *ListCommand) Options() []*command.Option {
	return options.Base()
}

func (c *ListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)

	groups, err := c.service.ListGroups(ctx, opts.Subscription, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("listing resource groups failed",
			"command", "group_list", "subscription", opts.Subscription, "error", err)
		command.WriteError(resp, err)
		return resp
	}

	if groups == nil {
		groups = []ResourceGroup{}
	}
	resp.SetResults(listResult{Groups: groups})
	return resp
}

type listResult struct {
	Groups []ResourceGroup `json:"groups"`
}
