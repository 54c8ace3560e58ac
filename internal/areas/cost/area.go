// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cost

import (
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
)

// Area registers the cost and forecast command subtrees.
type Area struct {
	logger  *log.Logger
	service Service
}

// NewArea wires the Cost Management area over the shared client provider.
func NewArea(logger *log.Logger, provider *azure.ClientProvider) *Area {
	return &Area{logger: logger, service: NewService(provider)}
}

// NewAreaWithService allows tests to substitute the service.
func NewAreaWithService(logger *log.Logger, service Service) *Area {
	return &Area{logger: logger, service: service}
}

func (a *Area) Name() string { return "cost" }

func (a *Area) Register(root *command.Group) {
	cost := command.NewGroup(a.Name(),
		"Cost Management operations - Commands for querying Azure Cost Management data for usage and cost information. Allows filtering by from and to date, time granularity, and grouping by Azure dimensions.")
	root.AddSubGroup(cost)
	cost.AddCommand(NewGetCommand(a.logger.With("command", "cost_get"), a.service))

	forecast := command.NewGroup("forecast",
		"Cost forecast operations - Commands for retrieving forecasted cost data for a subscription.")
	root.AddSubGroup(forecast)
	forecast.AddCommand(NewForecastGetCommand(a.logger.With("command", "forecast_get"), a.service))
}
