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

// ClusterListCommand lists all AKS clusters in a subscription.
type ClusterListCommand struct {
	logger  *log.Logger
	service Service
}

func NewClusterListCommand(logger *log.Logger, service Service) *ClusterListCommand {
	return &ClusterListCommand{logger: logger, service: service}
}

func (c *ClusterListCommand) Name() string { return "list" }

func (c *ClusterListCommand) Title() string { return "List AKS Clusters" }

func (c *ClusterListCommand) Description() string {
	return heredoc.Doc(`
		List all Azure Kubernetes Service (AKS) clusters in a subscription. Returns key
		cluster details including name, location, Kubernetes version, provisioning state
		and network configuration as a JSON array.`)
}

func (c *ClusterListCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *ClusterListCommand) Options() []*command.Option {
	return options.Base()
}

func (c *ClusterListCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)

	clusters, err := c.service.ListClusters(ctx, opts.Subscription, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("listing AKS clusters failed",
			"command", "aks_cluster_list", "subscription", opts.Subscription, "error", err)
		command.WriteError(resp, err, clusterMatchers()...)
		return resp
	}

	if clusters == nil {
		clusters = []Cluster{}
	}
	resp.SetResults(clusterListResult{Clusters: clusters})
	return resp
}

type clusterListResult struct {
	Clusters []Cluster `json:"clusters"`
}

func clusterMatchers() []command.Matcher {
	return []command.Matcher{
		{
			Matches: command.MatchStatus(http.StatusNotFound),
			Status:  http.StatusNotFound,
			Message: func(error) string {
				return "AKS cluster not found. Verify the cluster name, resource group and subscription, and ensure you have access."
			},
		},
	}
}
