// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package options holds the option definitions shared by every resource
// area and the retry-policy value object attached to each invocation.
package options

import "github.com/azure/azmcp/pkg/command"

// Shared option definitions. These are referenced read-only by many
// commands; use AsRequired/AsOptional to adjust per command.
var (
	Subscription = command.NewOption(
		"subscription",
		"The Azure subscription ID or name.",
		command.KindString,
	).AsRequired()

	Tenant = command.NewOption(
		"tenant",
		"The Microsoft Entra ID tenant ID or name used for authentication.",
		command.KindString,
	)

	ResourceGroup = command.NewOption(
		"resource-group",
		"The name of the Azure resource group.",
		command.KindString,
	)

	RetryDelay = command.NewOption(
		"retry-delay",
		"Initial delay in seconds between retry attempts.",
		command.KindInt,
	)

	RetryMaxDelay = command.NewOption(
		"retry-max-delay",
		"Maximum delay in seconds between retry attempts.",
		command.KindInt,
	)

	RetryMaxRetries = command.NewOption(
		"retry-max-retries",
		"Maximum number of retry attempts for failed requests.",
		command.KindInt,
	)

	RetryMode = command.NewOption(
		"retry-mode",
		"Retry strategy: 'fixed' or 'exponential'.",
		command.KindString,
	)

	RetryNetworkTimeout = command.NewOption(
		"retry-network-timeout",
		"Network operation timeout in seconds.",
		command.KindInt,
	)
)

// RetryOptions lists the five retry knobs for registration on a command.
func RetryOptions() []*command.Option {
	return []*command.Option{RetryDelay, RetryMaxDelay, RetryMaxRetries, RetryMode, RetryNetworkTimeout}
}

// Base registers the options common to every Azure command: subscription,
// tenant and the retry knobs.
func Base() []*command.Option {
	return append([]*command.Option{Subscription, Tenant}, RetryOptions()...)
}

// BaseOptions is the bound form of the common options.
type BaseOptions struct {
	Subscription string       `json:"subscription,omitempty"`
	Tenant       string       `json:"tenant,omitempty"`
	RetryPolicy  *RetryPolicy `json:"retryPolicy,omitempty"`
}

// BindBase extracts the common option values from a parse result.
func BindBase(parse *command.ParseResult) BaseOptions {
	return BaseOptions{
		Subscription: parse.String(Subscription.Name),
		Tenant:       parse.String(Tenant.Name),
		RetryPolicy:  BindRetryPolicy(parse),
	}
}
