// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeUserAgentString(t *testing.T) {
	t.Run("default form", func(t *testing.T) {
		t.Setenv("AZURE_MCP_USER_AGENT", "")

		userAgent := MakeUserAgentString()
		expected := fmt.Sprintf("azmcp/%s (Go %s; %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		require.Equal(t, expected, userAgent)
	})

	t.Run("appends the user specified agent", func(t *testing.T) {
		t.Setenv("AZURE_MCP_USER_AGENT", "vscode-azure-tools/1.2.3")

		userAgent := MakeUserAgentString()
		require.Contains(t, userAgent, "azmcp/")
		require.Contains(t, userAgent, " vscode-azure-tools/1.2.3")
	})
}
