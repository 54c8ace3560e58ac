// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cmd wires the command tree onto cobra for the one-shot CLI
// surface and hosts the `server start` entrypoint for the MCP surface.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/azure/azmcp/internal"
	"github.com/azure/azmcp/internal/areas/aks"
	"github.com/azure/azmcp/internal/areas/appconfig"
	"github.com/azure/azmcp/internal/areas/cosmos"
	"github.com/azure/azmcp/internal/areas/cost"
	"github.com/azure/azmcp/internal/areas/group"
	"github.com/azure/azmcp/internal/areas/subscription"
	"github.com/azure/azmcp/internal/areas/tools"
	"github.com/azure/azmcp/pkg/azure"
	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// StatusError carries a non-success response status to the process exit
// path without re-printing the envelope.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("command failed with status %d", e.Status)
}

// NewRootCommand assembles the full CLI: the generated command tree plus
// the server subcommand.
func NewRootCommand(logger *log.Logger) *cobra.Command {
	factory := BuildFactory(logger)

	root := &cobra.Command{
		Use:           "azmcp",
		Short:         "Azure MCP server - Azure resource operations for CLI and agent clients.",
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGroup(root, factory.Root())
	root.AddCommand(newServerCommand(logger, factory))

	return root
}

// BuildFactory constructs the shared client provider, registers every
// area and assembles the command tree.
func BuildFactory(logger *log.Logger) *command.Factory {
	userAgent := internal.MakeUserAgentString()

	var provider *azure.ClientProvider
	resolver := azure.NewTenantResolver(func(ctx context.Context) (*armsubscriptions.TenantsClient, error) {
		// Resolution itself runs under the home tenant credential.
		cred, err := provider.Credential(ctx, "")
		if err != nil {
			return nil, err
		}
		return armsubscriptions.NewTenantsClient(cred, provider.ArmClientOptions(nil))
	})
	provider = azure.NewClientProvider(logger, userAgent, azure.WithTenantResolver(resolver))

	var factory *command.Factory
	areas := []command.Area{
		subscription.NewArea(logger, provider),
		group.NewArea(logger, provider),
		aks.NewArea(logger, provider),
		cosmos.NewArea(logger, provider),
		appconfig.NewArea(logger, provider),
		cost.NewArea(logger, provider),
		tools.NewArea(logger, func() *command.Factory { return factory }),
	}
	factory = command.NewFactory(logger, areas)

	return factory
}

func addGroup(parent *cobra.Command, grp *command.Group) {
	for _, sub := range grp.SubGroups() {
		cobraGroup := &cobra.Command{
			Use:    sub.Name,
			Short:  sub.Description,
			Hidden: sub.Hidden(),
		}
		addGroup(cobraGroup, sub)
		parent.AddCommand(cobraGroup)
	}

	for _, registered := range grp.RegisteredCommands() {
		parent.AddCommand(newLeafCommand(registered))
	}
}

func newLeafCommand(registered command.RegisteredCommand) *cobra.Command {
	cmd := registered.Command

	leaf := &cobra.Command{
		Use:    cmd.Name(),
		Short:  cmd.Title(),
		Long:   cmd.Description(),
		Hidden: registered.Hidden,
		Args:   cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			parse := command.ParseFlags(cmd.Options(), cobraCmd.Flags())
			resp := cmd.Execute(cobraCmd.Context(), parse)

			payload, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("serializing response: %w", err)
			}
			fmt.Fprintln(cobraCmd.OutOrStdout(), string(payload))

			if !resp.Succeeded() {
				return &StatusError{Status: resp.Status}
			}
			return nil
		},
	}

	command.RegisterOptions(leaf.Flags(), cmd.Options())
	return leaf
}
