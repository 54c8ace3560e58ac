// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cosmos

import (
	"context"
	"net/http"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

var accountOption = command.NewOption(
	"account",
	"The name of the Cosmos DB account.",
	command.KindString,
).AsRequired()

// Area registers the Cosmos DB command subtree.
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

func (a *Area) Name() string { return "cosmos" }

func (a *Area) Register(root *command.Group) {
	cosmos := command.NewGroup(a.Name(),
		"Cosmos DB operations - Commands for listing and inspecting Azure Cosmos DB accounts.")
	root.AddSubGroup(cosmos)

	account := command.NewGroup("account", "Cosmos DB account operations")
	cosmos.AddSubGroup(account)
	account.AddCommand(NewAccountListCommand(a.logger.With("command", "cosmos_account_list"), a.service))
	account.AddCommand(NewAccountShowCommand(a.logger.With("command", "cosmos_account_show"), a.service))
}

// AccountListCommand lists Cosmos DB accounts in a subscription.
type AccountListCommand struct {
	logger  *log.Logger
	service Service
}

func NewAccountListCommand(logger *log.Logger, service Service) *AccountListCommand {
	return &AccountListCommand{logger: logger, service: service}
}

func (c *AccountListCommand) Name() string { return "list" }

func (c *AccountListCommand) Title() string { return "List Cosmos DB Accounts" }

func (c *AccountListCommand) Description() string {
	return heredoc.Doc(`
		List all Cosmos DB accounts in a subscription. Returns account names, locations,
		kinds and endpoints as a JSON array.`)
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

	accounts, err := c.service.ListAccounts(ctx, opts.Subscription, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("listing Cosmos DB accounts failed",
			"command", "cosmos_account_list", "subscription", opts.Subscription, "error", err)
		command.WriteError(resp, err)
		return resp
	}

	if accounts == nil {
		accounts = []Account{}
	}
	resp.SetResults(accountListResult{Accounts: accounts})
	return resp
}

type accountListResult struct {
	Accounts []Account `json:"accounts"`
}

// AccountShowCommand retrieves a single Cosmos DB account.
type AccountShowCommand struct {
	logger  *log.Logger
	service Service
}

func NewAccountShowCommand(logger *log.Logger, service Service) *AccountShowCommand {
	return &AccountShowCommand{logger: logger, service: service}
}

func (c *AccountShowCommand) Name() string { return "show" }

func (c *AccountShowCommand) Title() string { return "Show Cosmos DB Account" }

func (c *AccountShowCommand) Description() string {
	return heredoc.Doc(`
		Show the details of a single Cosmos DB account, including its kind, document
		endpoint and consistency configuration. Requires the account name, resource
		group and subscription.`)
}

func (c *AccountShowCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *AccountShowCommand) Options() []*command.Option {
	return append(options.Base(), options.ResourceGroup.AsRequired(), accountOption)
}

func (c *AccountShowCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)
	resourceGroup := parse.String(options.ResourceGroup.Name)
	account := parse.String(accountOption.Name)

	result, err := c.service.GetAccount(ctx, opts.Subscription, resourceGroup, account, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("getting Cosmos DB account failed",
			"command", "cosmos_account_show",
			"subscription", opts.Subscription,
			"resourceGroup", resourceGroup,
			"account", account,
			"error", err)
		command.WriteError(resp, err, command.Matcher{
			Matches: command.MatchStatus(http.StatusNotFound),
			Status:  http.StatusNotFound,
			Message: func(error) string {
				return "Cosmos DB account not found. Verify the account name, resource group and subscription, and ensure you have access."
			},
		})
		return resp
	}

	resp.SetResults(accountShowResult{Account: result})
	return resp
}

type accountShowResult struct {
	Account *Account `json:"account"`
}
