// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package aks

import (
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
)

// Area registers the AKS command subtree.
type Area struct {
	logger  *log.Logger
	service Service
}

// NewArea wires the AKS area over the shared client provider.
func NewArea(logger *log.Logger, provider *azure.ClientProvider) *Area {
	return &Area{logger: logger, service: NewService(provider)}
}

// NewAreaWithService allows tests to substitute the service.
func NewAreaWithService(logger *log.Logger, service Service) *Area {
	return &Area{logger: logger, service: service}
}

func (a *Area) Name() string { return "aks" }

func (a *Area) Register(root *command.Group) {
	aks := command.NewGroup(a.Name(),
		"Azure Kubernetes Service operations - Commands for managing and inspecting AKS clusters and node pools.")
	root.AddSubGroup(aks)

	cluster := command.NewGroup("cluster", "AKS cluster operations")
	aks.AddSubGroup(cluster)
	cluster.AddCommand(NewClusterListCommand(a.logger.With("command", "aks_cluster_list"), a.service))
	cluster.AddCommand(NewClusterGetCommand(a.logger.With("command", "aks_cluster_get"), a.service))

	nodepool := command.NewGroup("nodepool", "AKS node pool operations")
	aks.AddSubGroup(nodepool)
	nodepool.AddCommand(NewNodePoolListCommand(a.logger.With("command", "aks_nodepool_list"), a.service))
}
