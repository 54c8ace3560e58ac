// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version is the semantic version of the server, set via ldflags at
// release build time.
var Version = "0.1.0-dev"

const userSpecifiedAgentEnvironmentVariableName = "AZURE_MCP_USER_AGENT"

const productIdentifierKey = "azmcp"

// MakeUserAgentString creates the user agent applied to every outgoing
// Azure request: the product identifier plus platform info, optionally
// followed by a user-specified identifier from AZURE_MCP_USER_AGENT.
// Example: `azmcp/0.1.0-dev (Go go1.24; linux/amd64)`.
func MakeUserAgentString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s/%s %s", productIdentifierKey, Version, getPlatformInfo()))

	if userAgent := os.Getenv(userSpecifiedAgentEnvironmentVariableName); userAgent != "" {
		sb.WriteString(" " + userAgent)
	}

	return sb.String()
}

func getPlatformInfo() string {
	return fmt.Sprintf("(Go %s; %s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
