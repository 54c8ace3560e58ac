// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package aks

// Cluster is the JSON-serializable projection of an AKS managed cluster.
type Cluster struct {
	Name              string `json:"name"`
	ResourceGroup     string `json:"resourceGroup,omitempty"`
	Location          string `json:"location,omitempty"`
	KubernetesVersion string `json:"kubernetesVersion,omitempty"`
	ProvisioningState string `json:"provisioningState,omitempty"`
	NodeResourceGroup string `json:"nodeResourceGroup,omitempty"`
	DNSPrefix         string `json:"dnsPrefix,omitempty"`
	FQDN              string `json:"fqdn,omitempty"`
	NetworkPlugin     string `json:"networkPlugin,omitempty"`
	NetworkPolicy     string `json:"networkPolicy,omitempty"`
}

// NodePool is the JSON-serializable projection of an AKS agent pool.
type NodePool struct {
	Name                string `json:"name"`
	Count               int32  `json:"count,omitempty"`
	VMSize              string `json:"vmSize,omitempty"`
	OSType              string `json:"osType,omitempty"`
	Mode                string `json:"mode,omitempty"`
	OrchestratorVersion string `json:"orchestratorVersion,omitempty"`
	ProvisioningState   string `json:"provisioningState,omitempty"`
	EnableAutoScaling   bool   `json:"enableAutoScaling,omitempty"`
	MinCount            *int32 `json:"minCount,omitempty"`
	MaxCount            *int32 `json:"maxCount,omitempty"`
}
