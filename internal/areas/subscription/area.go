// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package subscription

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// Area registers the subscription command subtree.
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

func (a *Area) Name() string { return "subscription" }

func (a *Area) Register(root *command.Group) {
	group := command.NewGroup(a.Name(),
		"Azure subscription operations - Commands for listing the subscriptions available to the signed-in account.")
	root.AddSubGroup(group)

	group.AddCommand(NewListCommand(a.logger.With("command", "subscription_list"), a.service))
}

// ListCommand lists the subscriptions visible to the current account.
type ListCommand struct {
	logger  *log.Logger
	service Service
}

func NewListCommand(logger *log.Logger, service Service) *ListCommand {
	return &ListCommand{logger: logger, service: service}
}

func (c *ListCommand) Name() string { return "list" }

func (c *ListCommand) Title() string { return "List Azure Subscriptions" }

func (c *ListCommand) Description() string {
	return heredoc.Doc(`
		List all Azure subscriptions accessible to the signed-in account. Returns the
		subscription ID, display name, state and tenant for each subscription as a JSON
		array. Optionally scope the listing to a single tenant.`)
}

func (c *ListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *ListCommand) Options() []*command.Option {
	return append([]*command.Option{options.Tenant}, options.RetryOptions()...)
}

func (c *ListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	tenant := parse.String(options.Tenant.Name)
	retry := options.BindRetryPolicy(parse)

	subscriptions, err := c.service.ListSubscriptions(ctx, tenant, retry)
	if err != nil {
		c.logger.Error("listing subscriptions failed", "command", "subscription_list", "tenant", tenant, "error", err)
		command.WriteError(resp, err)
		return resp
	}

	if subscriptions == nil {
		subscriptions = []Subscription{}
	}
	resp.SetResults(listResult{Subscriptions: subscriptions})
	return resp
}

type listResult struct {
	Subscriptions []Subscription `json:"subscriptions"`
}
