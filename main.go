// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/azure/azmcp/cmd"
	"github.com/charmbracelet/log"
)

func main() {
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCommand(logger)
	if err := root.ExecuteContext(ctx); err != nil {
		var statusErr *cmd.StatusError
		if !errors.As(err, &statusErr) {
			logger.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}

// newLogger writes structured logs to stderr so stdout stays reserved
// for response payloads and the stdio MCP transport.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "azmcp",
	})

	if level := os.Getenv("AZMCP_LOG_LEVEL"); level != "" {
		if parsed, err := log.ParseLevel(level); err == nil {
			logger.SetLevel(parsed)
		}
	}

	return logger
}
