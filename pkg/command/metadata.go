// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

// Metadata carries descriptive behavior flags for a command. The flags are
// fixed per command and surfaced to tooling (MCP tool annotations, policy
// layers); the framework itself never branches on them.
type Metadata struct {
	// Destructive indicates the command may delete or irreversibly modify
	// resources.
	Destructive bool
	// Idempotent indicates repeated invocations with the same arguments
	// have no additional effect.
	Idempotent bool
	// OpenWorld indicates the command interacts with external entities
	// beyond the ones named in its arguments.
	OpenWorld bool
	// ReadOnly indicates the command performs no writes.
	ReadOnly bool
	// LocalRequired indicates the command needs local machine access.
	LocalRequired bool
	// Secret indicates the command handles secret material.
	Secret bool
}
