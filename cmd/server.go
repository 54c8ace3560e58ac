// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package cmd

import (
	"fmt"
	"strings"

	"github.com/azure/azmcp/internal"
	"github.com/azure/azmcp/internal/server"
	"github.com/azure/azmcp/pkg/command"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newServerCommand exposes the command tree over MCP transports. Flags
// may also come from the environment (AZMCP_TRANSPORT, AZMCP_ADDRESS).
func newServerCommand(logger *log.Logger, factory *command.Factory) *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the MCP server.",
	}

	v := viper.New()
	v.SetEnvPrefix("AZMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start the MCP server and serve tools to connected clients.",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			transport := v.GetString("transport")
			address := v.GetString("address")

			switch transport {
			case server.TransportStdio, server.TransportSSE, server.TransportStreamableHTTP:
			default:
				return fmt.Errorf(
					"unsupported transport %q, expected one of %s, %s or %s",
					transport, server.TransportStdio, server.TransportSSE, server.TransportStreamableHTTP)
			}

			srv := server.New(factory, logger, internal.Version)
			return srv.Serve(cobraCmd.Context(), transport, address)
		},
	}

	startCmd.Flags().String("transport", server.TransportStdio, "Transport to serve on (stdio, sse or streamable-http).")
	startCmd.Flags().String("address", "localhost:5008", "Listen address for HTTP transports.")
	_ = v.BindPFlag("transport", startCmd.Flags().Lookup("transport"))
	_ = v.BindPFlag("address", startCmd.Flags().Lookup("address"))

	serverCmd.AddCommand(startCmd)
	return serverCmd
}
