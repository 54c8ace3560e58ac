// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package aks exposes Azure Kubernetes Service operations as commands.
package aks

import (
	"context"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v2"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/options"
)

// Service is the AKS surface the commands invoke.
type Service interface {
	ListClusters(ctx context.Context, subscription string, tenant string, retry *options.RetryPolicy) ([]Cluster, error)
	GetCluster(ctx context.Context, subscription string, resourceGroup string, name string, tenant string, retry *options.RetryPolicy) (*Cluster, error)
	ListNodePools(ctx context.Context, subscription string, resourceGroup string, cluster string, tenant string, retry *options.RetryPolicy) ([]NodePool, error)
}

type service struct {
	provider *azure.ClientProvider
	clusters azure.ClientCache[*armcontainerservice.ManagedClustersClient]
	pools    azure.ClientCache[*armcontainerservice.AgentPoolsClient]
}

// NewService creates the AKS service over the shared client provider.
func NewService(provider *azure.ClientProvider) Service {
	return &service{provider: provider}
}

func (s *service) clusterClient(
	ctx context.Context,
	subscription string,
	tenant string,
	retry *options.RetryPolicy,
) (*armcontainerservice.ManagedClustersClient, error) {
	key, err := s.provider.ClientKey(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	return azure.GetOrCreateClient(&s.clusters, key, func() (*armcontainerservice.ManagedClustersClient, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armcontainerservice.NewManagedClustersClient(subscription, cred, s.provider.ArmClientOptions(retry))
	})
}

func (s *service) poolClient(
	ctx context.Context,
	subscription string,
	tenant string,
	retry *options.RetryPolicy,
) (*armcontainerservice.AgentPoolsClient, error) {
	key, err := s.provider.ClientKey(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	return azure.GetOrCreateClient(&s.pools, key, func() (*armcontainerservice.AgentPoolsClient, error) {
		cred, err := s.provider.Credential(ctx, tenant)
		if err != nil {
			return nil, err
		}
		return armcontainerservice.NewAgentPoolsClient(subscription, cred, s.provider.ArmClientOptions(retry))
	})
}

func (s *service) ListClusters(
	ctx context.Context,
	subscription string,
	tenant string,
	retry *options.RetryPolicy,
) ([]Cluster, error) {
	client, err := s.clusterClient(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	var clusters []Cluster
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, mc := range page.Value {
			clusters = append(clusters, toCluster(mc))
		}
	}

	return clusters, nil
}

func (s *service) GetCluster(
	ctx context.Context,
	subscription string,
	resourceGroup string,
	name string,
	tenant string,
	retry *options.RetryPolicy,
) (*Cluster, error) {
	client, err := s.clusterClient(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	result, err := client.Get(ctx, resourceGroup, name, nil)
	if err != nil {
		return nil, err
	}

	cluster := toCluster(&result.ManagedCluster)
	return &cluster, nil
}

func (s *service) ListNodePools(
	ctx context.Context,
	subscription string,
	resourceGroup string,
	cluster string,
	tenant string,
	retry *options.RetryPolicy,
) ([]NodePool, error) {
	client, err := s.poolClient(ctx, subscription, tenant, retry)
	if err != nil {
		return nil, err
	}

	var pools []NodePool
	pager := client.NewListPager(resourceGroup, cluster, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, pool := range page.Value {
			pools = append(pools, toNodePool(pool))
		}
	}

	return pools, nil
}

func toCluster(mc *armcontainerservice.ManagedCluster) Cluster {
	cluster := Cluster{}

	if mc.Name != nil {
		cluster.Name = *mc.Name
	}
	if mc.ID != nil {
		cluster.ResourceGroup = resourceGroupFromID(*mc.ID)
	}
	if mc.Location != nil {
		cluster.Location = *mc.Location
	}

	props := mc.Properties
	if props == nil {
		return cluster
	}

	if props.KubernetesVersion != nil {
		cluster.KubernetesVersion = *props.KubernetesVersion
	}
	if props.ProvisioningState != nil {
		cluster.ProvisioningState = *props.ProvisioningState
	}
	if props.NodeResourceGroup != nil {
		cluster.NodeResourceGroup = *props.NodeResourceGroup
	}
	if props.DNSPrefix != nil {
		cluster.DNSPrefix = *props.DNSPrefix
	}
	if props.Fqdn != nil {
		cluster.FQDN = *props.Fqdn
	}
	if np := props.NetworkProfile; np != nil {
		if np.NetworkPlugin != nil {
			cluster.NetworkPlugin = string(*np.NetworkPlugin)
		}
		if np.NetworkPolicy != nil {
			cluster.NetworkPolicy = string(*np.NetworkPolicy)
		}
	}

	return cluster
}

func toNodePool(pool *armcontainerservice.AgentPool) NodePool {
	nodePool := NodePool{}

	if pool.Name != nil {
		nodePool.Name = *pool.Name
	}

	props := pool.Properties
	if props == nil {
		return nodePool
	}

	if props.Count != nil {
		nodePool.Count = *props.Count
	}
	if props.VMSize != nil {
		nodePool.VMSize = *props.VMSize
	}
	if props.OSType != nil {
		nodePool.OSType = string(*props.OSType)
	}
	if props.Mode != nil {
		nodePool.Mode = string(*props.Mode)
	}
	if props.OrchestratorVersion != nil {
		nodePool.OrchestratorVersion = *props.OrchestratorVersion
	}
	if props.ProvisioningState != nil {
		nodePool.ProvisioningState = *props.ProvisioningState
	}
	if props.EnableAutoScaling != nil {
		nodePool.EnableAutoScaling = *props.EnableAutoScaling
	}
	nodePool.MinCount = props.MinCount
	nodePool.MaxCount = props.MaxCount

	return nodePool
}

// resourceGroupFromID extracts the resource group segment of an ARM
// resource id.
func resourceGroupFromID(id string) string {
	segments := strings.Split(id, "/")
	for i := 0; i < len(segments)-1; i++ {
		if strings.EqualFold(segments[i], "resourceGroups") {
			return segments[i+1]
		}
	}
	return ""
}
