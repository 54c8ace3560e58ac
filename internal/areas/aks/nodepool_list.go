// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package aks

import (
	"context"
	"net/http"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// NodePoolListCommand lists the node pools of an AKS cluster.
type NodePoolListCommand struct {
	logger  *log.Logger
	service Service
}

func NewNodePoolListCommand(logger *log.Logger, service Service) *NodePoolListCommand {
	return &NodePoolListCommand{logger: logger, service: service}
}

func (c *NodePoolListCommand) Name() string { return "list" }

func (c *NodePoolListCommand) Title() string { return "List AKS Node Pools" }

func (c *NodePoolListCommand) Description() string {
	return heredoc.Doc(`
		List all node pools for a specific Azure Kubernetes Service (AKS) cluster.
		Returns key node pool details including sizing, count, OS type, mode and
		autoscaling settings.`)
}

func (c *NodePoolListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *NodePoolListCommand) Options() []*command.Option {
	return append(options.Base(), options.ResourceGroup.AsRequired(), clusterOption)
}

func (c *NodePoolListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)
	resourceGroup := parse.String(options.ResourceGroup.Name)
	cluster := parse.String(clusterOption.Name)

	pools, err := c.service.ListNodePools(ctx, opts.Subscription, resourceGroup, cluster, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("listing AKS node pools failed",
			"command", "aks_nodepool_list",
			"subscription", opts.Subscription,
			"resourceGroup", resourceGroup,
			"cluster", cluster,
			"error", err)
		command.WriteError(resp, err, command.Matcher{
			Matches: command.MatchStatus(http.StatusNotFound),
			Status:  http.StatusNotFound,
			Message: func(error) string {
				return "AKS cluster or node pools not found. Verify the cluster name, resource group and subscription, and ensure you have access."
			},
		})
		return resp
	}

	if pools == nil {
		pools = []NodePool{}
	}
	resp.SetResults(nodePoolListResult{NodePools: pools})
	return resp
}

type nodePoolListResult struct {
	NodePools []NodePool `json:"nodePools"`
}
