// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ValueKind describes the type of value an option accepts.
type ValueKind int

const (
	KindString ValueKind = iota
	KindStringSlice
	KindInt
	KindBool
	// KindDateTime values are accepted as RFC 3339 timestamps or
	// as plain dates (2006-01-02) and bound as time.Time.
	KindDateTime
)

// Option declares a single named command argument. Options are immutable
// after construction and may be shared across commands.
type Option struct {
	Name        string
	Description string
	Required    bool
	Kind        ValueKind

	// AllowMultiple permits the option to be repeated on the command line,
	// accumulating values. Only meaningful for KindStringSlice.
	AllowMultiple bool

	// DefaultValue is used when the caller does not supply the option.
	// Must match Kind (string, []string, int or bool).
	DefaultValue any
}

// NewOption creates an option with the given name, description and kind.
func NewOption(name string, description string, kind ValueKind) *Option {
	return &Option{Name: name, Description: description, Kind: kind}
}

// AsRequired returns a copy of the option marked required. The receiver is
// left untouched so shared definitions stay reusable.
func (o *Option) AsRequired() *Option {
	clone := *o
	clone.Required = true
	return &clone
}

// AsOptional returns a copy of the option with the required flag cleared.
func (o *Option) AsOptional() *Option {
	clone := *o
	clone.Required = false
	return &clone
}

// Apply registers the option onto the given flag set.
func (o *Option) Apply(flags *pflag.FlagSet) {
	switch o.Kind {
	case KindString, KindDateTime:
		def, _ := o.DefaultValue.(string)
		flags.String(o.Name, def, o.Description)
	case KindStringSlice:
		def, _ := o.DefaultValue.([]string)
		flags.StringSlice(o.Name, def, o.Description)
	case KindInt:
		def, _ := o.DefaultValue.(int)
		flags.Int(o.Name, def, o.Description)
	case KindBool:
		def, _ := o.DefaultValue.(bool)
		flags.Bool(o.Name, def, o.Description)
	default:
		panic(fmt.Sprintf("option %q has unknown value kind %d", o.Name, o.Kind))
	}
}

// RegisterOptions applies every option onto the flag set. Duplicate option
// names within one command are a programming error and panic at startup.
func RegisterOptions(flags *pflag.FlagSet, opts []*Option) {
	seen := make(map[string]struct{}, len(opts))
	for _, opt := range opts {
		if _, dup := seen[opt.Name]; dup {
			panic(fmt.Sprintf("duplicate option %q registered on one command", opt.Name))
		}
		seen[opt.Name] = struct{}{}
		opt.Apply(flags)
	}
}
