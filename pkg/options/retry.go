// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/azure/azmcp/pkg/command"
)

// Retry modes accepted by --retry-mode.
const (
	RetryModeFixed       = "fixed"
	RetryModeExponential = "exponential"
)

// RetryPolicy captures caller-configurable transport retry knobs. Each
// field is optional; nil means "keep the SDK default". Structural equality
// over the set fields decides whether a cached client can be reused.
type RetryPolicy struct {
	DelaySeconds          *int    `json:"delaySeconds,omitempty"`
	MaxDelaySeconds       *int    `json:"maxDelaySeconds,omitempty"`
	MaxRetries            *int    `json:"maxRetries,omitempty"`
	Mode                  *string `json:"mode,omitempty"`
	NetworkTimeoutSeconds *int    `json:"networkTimeoutSeconds,omitempty"`
}

// BindRetryPolicy extracts the retry options from a parse result. Returns
// nil when the caller set none of them, so an absent policy compares equal
// to a policy-less cached client.
func BindRetryPolicy(parse *command.ParseResult) *RetryPolicy {
	var p RetryPolicy
	anySet := false

	bind := func(opt *command.Option, dst **int) {
		if parse.IsSet(opt.Name) {
			v := parse.Int(opt.Name)
			*dst = &v
			anySet = true
		}
	}

	bind(RetryDelay, &p.DelaySeconds)
	bind(RetryMaxDelay, &p.MaxDelaySeconds)
	bind(RetryMaxRetries, &p.MaxRetries)
	bind(RetryNetworkTimeout, &p.NetworkTimeoutSeconds)

	if parse.IsSet(RetryMode.Name) {
		mode := strings.ToLower(parse.String(RetryMode.Name))
		p.Mode = &mode
		anySet = true
	}

	if !anySet {
		return nil
	}
	return &p
}

// Equal reports structural equality: two policies are interchangeable for
// caching purposes iff all set fields match. Both nil compares equal.
func (p *RetryPolicy) Equal(other *RetryPolicy) bool {
	if p == nil || other == nil {
		return p == other
	}

	return intPtrEqual(p.DelaySeconds, other.DelaySeconds) &&
		intPtrEqual(p.MaxDelaySeconds, other.MaxDelaySeconds) &&
		intPtrEqual(p.MaxRetries, other.MaxRetries) &&
		intPtrEqual(p.NetworkTimeoutSeconds, other.NetworkTimeoutSeconds) &&
		strPtrEqual(p.Mode, other.Mode)
}

// CacheKey renders the set fields into a stable string usable as part of a
// client cache key. The empty string means "no policy".
func (p *RetryPolicy) CacheKey() string {
	if p == nil {
		return ""
	}

	var sb strings.Builder
	writeInt := func(label string, v *int) {
		if v != nil {
			fmt.Fprintf(&sb, "%s=%d;", label, *v)
		}
	}

	writeInt("delay", p.DelaySeconds)
	writeInt("maxDelay", p.MaxDelaySeconds)
	writeInt("maxRetries", p.MaxRetries)
	writeInt("networkTimeout", p.NetworkTimeoutSeconds)
	if p.Mode != nil {
		fmt.Fprintf(&sb, "mode=%s;", *p.Mode)
	}

	return sb.String()
}

// Apply copies the set fields onto azcore retry options, leaving unset
// fields at their SDK defaults. azcore has no retry-mode knob; fixed mode
// is expressed by pinning the maximum delay to the base delay.
func (p *RetryPolicy) Apply(retry *policy.RetryOptions) {
	if p == nil {
		return
	}

	if p.MaxRetries != nil {
		retry.MaxRetries = int32(*p.MaxRetries)
	}
	if p.DelaySeconds != nil {
		retry.RetryDelay = time.Duration(*p.DelaySeconds) * time.Second
	}
	if p.MaxDelaySeconds != nil {
		retry.MaxRetryDelay = time.Duration(*p.MaxDelaySeconds) * time.Second
	}
	if p.NetworkTimeoutSeconds != nil {
		retry.TryTimeout = time.Duration(*p.NetworkTimeoutSeconds) * time.Second
	}
	if p.Mode != nil && *p.Mode == RetryModeFixed && retry.RetryDelay > 0 {
		retry.MaxRetryDelay = retry.RetryDelay
	}
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
