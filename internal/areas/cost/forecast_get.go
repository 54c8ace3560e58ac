// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cost

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

var (
	forecastTypeOption = command.NewOption(
		"type",
		"The type of the query (ActualCost, AmortizedCost, Usage). Determines whether to use 'ActualCost' (default), 'AmortizedCost' or 'Usage' based on user intent.",
		command.KindString,
	)

	aggregationNameOption = command.NewOption(
		"aggregation-name",
		"The type of cost to use. This can either be Pre Tax Cost or Total Cost, and it can be either in USD or local currency (PreTaxCost, Cost, PreTaxCostUSD, CostUSD).",
		command.KindString,
	)

	aggregationFunctionOption = command.NewOption(
		"aggregation-function",
		"The type of function to use. This can be Sum (default), Count, Min, Max, Avg.",
		command.KindString,
	)

	includeActualCostOption = command.NewOption(
		"include-actual-cost",
		"A boolean determining if actual cost will be included.",
		command.KindBool,
	)

	includeFreshPartialCostOption = command.NewOption(
		"include-fresh-partial-cost",
		"A boolean determining if fresh partial cost will be included.",
		command.KindBool,
	)
)

// ForecastGetCommand retrieves forecasted cost data for a subscription.
type ForecastGetCommand struct {
	logger  *log.Logger
	service Service
}

func NewForecastGetCommand(logger *log.Logger, service Service) *ForecastGetCommand {
	return &ForecastGetCommand{logger: logger, service: service}
}

func (c *ForecastGetCommand) Name() string { return "get" }

func (c *ForecastGetCommand) Title() string { return "Get Azure Cost Management Forecast" }

func (c *ForecastGetCommand) Description() string {
	return heredoc.Doc(`
		Gives Azure Cost Management forecasted data for usage and cost information.
		Retrieves cost data for a subscription with flexible filtering and time period
		options.`)
}

func (c *ForecastGetCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *ForecastGetCommand) Options() []*command.Option {
	return append(options.Base(),
		forecastTypeOption, granularityOption, fromDateOption, toDateOption,
		aggregationNameOption, aggregationFunctionOption,
		includeActualCostOption, includeFreshPartialCostOption)
}

func (c *ForecastGetCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)
	params := ForecastParams{
		Type:                    parse.String(forecastTypeOption.Name),
		Granularity:             parse.String(granularityOption.Name),
		From:                    boundDate(parse, fromDateOption.Name),
		To:                      boundDate(parse, toDateOption.Name),
		AggregationName:         parse.String(aggregationNameOption.Name),
		AggregationFunction:     parse.String(aggregationFunctionOption.Name),
		IncludeActualCost:       parse.Bool(includeActualCostOption.Name),
		IncludeFreshPartialCost: parse.Bool(includeFreshPartialCostOption.Name),
	}

	result, err := c.service.QueryForecast(ctx, opts.Subscription, params, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("querying cost forecast failed",
			"command", "forecast_get", "subscription", opts.Subscription, "type", params.Type, "error", err)
		command.WriteError(resp, err, costMatchers()...)
		return resp
	}

	resp.SetResults(forecastGetResult{ForecastData: result})
	return resp
}

type forecastGetResult struct {
	ForecastData *QueryResult `json:"forecastData"`
}
