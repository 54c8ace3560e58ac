// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package command implements the command registration, dispatch and
// response framework: the command contract, the group tree, the factory
// that assembles it from registered areas, and the shared error-to-status
// classification every command funnels failures through.
package command

import "context"

// Command is the contract every invocable operation implements. Commands
// are constructed once at registration time, are immutable afterwards, and
// must be safe for concurrent invocation: all per-request state lives in
// the ParseResult and the returned Response.
type Command interface {
	// Name is the leaf token of the command, unique within its group.
	Name() string
	// Title is a short human-readable display name.
	Title() string
	// Description documents the command for discovery clients.
	Description() string
	// Metadata returns the command's fixed behavior flags.
	Metadata() Metadata
	// Options lists the declared arguments in registration order.
	Options() []*Option
	// Execute runs the command. It must always return an envelope and never
	// let an error escape: validation failures produce a 400, service
	// failures are classified via WriteError, and ctx cancellation aborts
	// in-flight calls.
	Execute(ctx context.Context, parse *ParseResult) *Response
}

// Area contributes one subtree of commands to the root group at startup.
// Each resource domain (aks, cosmos, storage, ...) supplies one Area.
type Area interface {
	// Name is the top-level group token for the area.
	Name() string
	// Register adds the area's groups and commands under the root group.
	Register(root *Group)
}
