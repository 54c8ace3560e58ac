// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cost

import (
	"context"
	"net/http"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

var (
	typeOption = command.NewOption(
		"type",
		"The type of the query (ActualCost, AmortizedCost). Determines whether to use 'ActualCost' (default) or 'AmortizedCost' based on user intent.",
		command.KindString,
	)

	granularityOption = command.NewOption(
		"granularity",
		"Granularity groups cost data by time intervals (None, Daily, Monthly). Select based on user intent for trends or totals.",
		command.KindString,
	)

	fromDateOption = command.NewOption(
		"from-date",
		"Start date of the time period. Use an RFC 3339 timestamp or YYYY-MM-DD date.",
		command.KindDateTime,
	)

	toDateOption = command.NewOption(
		"to-date",
		"End date of the time period. Use an RFC 3339 timestamp or YYYY-MM-DD date.",
		command.KindDateTime,
	)

	groupByOption = &command.Option{
		Name:          "group-by",
		Description:   "Array of column names to group by (e.g., ResourceGroup, ResourceType).",
		Kind:          command.KindStringSlice,
		AllowMultiple: true,
	}

	aggregationCostTypeOption = command.NewOption(
		"aggregation-cost-type",
		"The type of cost to use. This can either be Pre Tax Cost or Total Cost, and it can be either in USD or local currency (PreTaxCost, Cost, PreTaxCostUSD, CostUSD).",
		command.KindString,
	)
)

// boundDate converts a parsed timestamp into the optional form the
// service takes.
func boundDate(parse *command.ParseResult, name string) *time.Time {
	if ts, ok := parse.Time(name); ok {
		return &ts
	}
	return nil
}

func costMatchers() []command.Matcher {
	return []command.Matcher{
		{
			Matches: command.MatchStatus(http.StatusNotFound),
			Status:  http.StatusNotFound,
			Message: func(error) string {
				return "Cost data not found. Verify the subscription exists and you have access to cost management data."
			},
		},
		{
			Matches: command.MatchStatus(http.StatusTooManyRequests),
			Status:  http.StatusTooManyRequests,
			Message: func(error) string {
				return "Request throttled. Cost management API has rate limits. Please wait and retry."
			},
		},
	}
}

// GetCommand queries cost and usage data for a subscription.
type GetCommand struct {
	logger  *log.Logger
	service Service
}

func NewGetCommand(logger *log.Logger, service Service) *GetCommand {
	return &GetCommand{logger: logger, service: service}
}

func (c *GetCommand) Name() string { return "get" }

func (c *GetCommand) Title() string { return "Get Azure Cost Management Query" }

func (c *GetCommand) Description() string {
	return heredoc.Doc(`
		Query Azure Cost Management data for usage and cost information. Retrieves cost
		data for a subscription with flexible filtering, grouping and time period
		options.`)
}

func (c *GetCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *GetCommand) Options() []*command.Option {
	return append(options.Base(),
		typeOption, granularityOption, fromDateOption, toDateOption, groupByOption, aggregationCostTypeOption)
}

func (c *GetCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)
	params := QueryParams{
		Type:                parse.String(typeOption.Name),
		Granularity:         parse.String(granularityOption.Name),
		From:                boundDate(parse, fromDateOption.Name),
		To:                  boundDate(parse, toDateOption.Name),
		GroupBy:             parse.StringSlice(groupByOption.Name),
		AggregationCostType: parse.String(aggregationCostTypeOption.Name),
	}

	result, err := c.service.QueryCosts(ctx, opts.Subscription, params, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("querying cost data failed",
			"command", "cost_get", "subscription", opts.Subscription, "type", params.Type, "error", err)
		command.WriteError(resp, err, costMatchers()...)
		return resp
	}

	resp.SetResults(costGetResult{CostData: result})
	return resp
}

type costGetResult struct {
	CostData *QueryResult `json:"costData"`
}
