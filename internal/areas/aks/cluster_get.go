// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package aks

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/azure/azmcp/pkg/command"
	"github.com/azure/azmcp/pkg/options"
	"github.com/charmbracelet/log"
)

// clusterOption names the target cluster for get-style commands.
var clusterOption = command.NewOption(
	"cluster",
	"The name of the AKS cluster.",
	command.KindString,
).AsRequired()

// ClusterGetCommand retrieves a single AKS cluster.
type ClusterGetCommand struct {
	logger  *log.Logger
	service Service
}

func NewClusterGetCommand(logger *log.Logger, service Service) *ClusterGetCommand {
	return &ClusterGetCommand{logger: logger, service: service}
}

func (c *ClusterGetCommand) Name() string { return "get" }

func (c *ClusterGetCommand) Title() string { return "Get AKS Cluster" }

func (c *ClusterGetCommand) Description() string {
	return heredoc.Doc(`
		Get the details of a single Azure Kubernetes Service (AKS) cluster, including
		Kubernetes version, provisioning state, DNS configuration and network profile.
		Requires the cluster name, resource group and subscription.`)
}

func (c *ClusterGetCommand) Metadata() command.Metadata {
	return command.Metadata{Idempotent: true, OpenWorld: true, ReadOnly: true}
}

func (c *ClusterGetCommand) Options() []*command.Option {
	return append(options.Base(), options.ResourceGroup.AsRequired(), clusterOption)
}

func (c *ClusterGetCommand) Execute(ctx context.Context, parse *command.ParseResult) *command.Response {
	resp := command.NewResponse()
	if !command.Validate(parse, resp) {
		return resp
	}

	opts := options.BindBase(parse)
	resourceGroup := parse.String(options.ResourceGroup.Name)
	cluster := parse.String(clusterOption.Name)

	result, err := c.service.GetCluster(ctx, opts.Subscription, resourceGroup, cluster, opts.Tenant, opts.RetryPolicy)
	if err != nil {
		c.logger.Error("getting AKS cluster failed",
			"command", "aks_cluster_get",
			"subscription", opts.Subscription,
			"resourceGroup", resourceGroup,
			"cluster", cluster,
			"error", err)
		command.WriteError(resp, err, clusterMatchers()...)
		return resp
	}

	resp.SetResults(clusterGetResult{Cluster: result})
	return resp
}

type clusterGetResult struct {
	Cluster *Cluster `json:"cluster"`
}
