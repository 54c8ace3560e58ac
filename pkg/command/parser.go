// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package command

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
)

// ParseResult holds the parsed values for one invocation. It is created
// fresh per request and never shared across invocations.
type ParseResult struct {
	values  map[string]any
	set     map[string]bool
	missing []string
	err     error
}

func newParseResult() *ParseResult {
	return &ParseResult{
		values: map[string]any{},
		set:    map[string]bool{},
	}
}

// ParseFlags builds a ParseResult from an already-parsed flag set. Used on
// the CLI path where cobra owns flag parsing.
func ParseFlags(opts []*Option, flags *pflag.FlagSet) *ParseResult {
	parse := newParseResult()

	for _, opt := range opts {
		changed := flags.Changed(opt.Name)
		parse.set[opt.Name] = changed

		switch opt.Kind {
		case KindString:
			v, _ := flags.GetString(opt.Name)
			parse.values[opt.Name] = v
		case KindDateTime:
			v, _ := flags.GetString(opt.Name)
			parse.bindDateTime(opt.Name, v, changed)
		case KindStringSlice:
			v, _ := flags.GetStringSlice(opt.Name)
			parse.values[opt.Name] = v
		case KindInt:
			v, _ := flags.GetInt(opt.Name)
			parse.values[opt.Name] = v
		case KindBool:
			v, _ := flags.GetBool(opt.Name)
			parse.values[opt.Name] = v
		}

		if opt.Required && !changed {
			parse.missing = append(parse.missing, opt.Name)
		}
	}

	return parse
}

// ParseArguments builds a ParseResult from a tool-call parameters object.
// JSON scalar types are coerced onto the declared option kinds; values that
// cannot be coerced become parse errors surfaced as a 400 at validation.
func ParseArguments(opts []*Option, args map[string]any) *ParseResult {
	parse := newParseResult()

	for _, opt := range opts {
		raw, ok := args[opt.Name]
		parse.set[opt.Name] = ok

		if !ok || raw == nil {
			if opt.DefaultValue != nil {
				parse.values[opt.Name] = opt.DefaultValue
			}
			if opt.Required {
				parse.missing = append(parse.missing, opt.Name)
			}
			continue
		}

		switch opt.Kind {
		case KindString:
			parse.values[opt.Name] = fmt.Sprint(raw)
		case KindDateTime:
			parse.bindDateTime(opt.Name, fmt.Sprint(raw), true)
		case KindStringSlice:
			parse.bindStringSlice(opt.Name, raw)
		case KindInt:
			parse.bindInt(opt.Name, raw)
		case KindBool:
			parse.bindBool(opt.Name, raw)
		}
	}

	return parse
}

func (p *ParseResult) bindDateTime(name string, raw string, set bool) {
	if !set || raw == "" {
		return
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			p.values[name] = ts
			return
		}
	}
	p.addError(fmt.Errorf("invalid value %q for --%s: expected an RFC 3339 timestamp or YYYY-MM-DD date", raw, name))
}

func (p *ParseResult) bindStringSlice(name string, raw any) {
	switch v := raw.(type) {
	case []string:
		p.values[name] = v
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
		p.values[name] = items
	case string:
		p.values[name] = strings.Split(v, ",")
	default:
		p.addError(fmt.Errorf("invalid value for --%s: expected an array of strings", name))
	}
}

func (p *ParseResult) bindInt(name string, raw any) {
	switch v := raw.(type) {
	case int:
		p.values[name] = v
	case float64:
		if v != math.Trunc(v) {
			p.addError(fmt.Errorf("invalid value %v for --%s: expected an integer", v, name))
			return
		}
		p.values[name] = int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			p.addError(fmt.Errorf("invalid value %q for --%s: expected an integer", v, name))
			return
		}
		p.values[name] = parsed
	default:
		p.addError(fmt.Errorf("invalid value for --%s: expected an integer", name))
	}
}

func (p *ParseResult) bindBool(name string, raw any) {
	switch v := raw.(type) {
	case bool:
		p.values[name] = v
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			p.addError(fmt.Errorf("invalid value %q for --%s: expected true or false", v, name))
			return
		}
		p.values[name] = parsed
	default:
		p.addError(fmt.Errorf("invalid value for --%s: expected true or false", name))
	}
}

func (p *ParseResult) addError(err error) {
	p.err = multierr.Append(p.err, err)
}

// IsSet reports whether the caller explicitly supplied the option.
func (p *ParseResult) IsSet(name string) bool {
	return p.set[name]
}

// String returns the bound string value for the option, or "".
func (p *ParseResult) String(name string) string {
	v, _ := p.values[name].(string)
	return v
}

// StringSlice returns the bound slice value for the option, or nil.
func (p *ParseResult) StringSlice(name string) []string {
	v, _ := p.values[name].([]string)
	return v
}

// Int returns the bound integer value for the option, or 0.
func (p *ParseResult) Int(name string) int {
	v, _ := p.values[name].(int)
	return v
}

// Bool returns the bound boolean value for the option, or false.
func (p *ParseResult) Bool(name string) bool {
	v, _ := p.values[name].(bool)
	return v
}

// Time returns the bound timestamp for a KindDateTime option.
func (p *ParseResult) Time(name string) (time.Time, bool) {
	v, ok := p.values[name].(time.Time)
	return v, ok
}

// MissingRequired lists required options the caller did not supply.
func (p *ParseResult) MissingRequired() []string {
	return p.missing
}

// Err aggregates all value parse errors, or nil.
func (p *ParseResult) Err() error {
	return p.err
}

// Validate checks structural parse errors and required-option presence. On
// failure it populates the response with a 400 and returns false; commands
// short-circuit and return the envelope as-is.
func Validate(parse *ParseResult, resp *Response) bool {
	if err := parse.Err(); err != nil {
		resp.SetError(http.StatusBadRequest, err.Error())
		return false
	}

	if missing := parse.MissingRequired(); len(missing) > 0 {
		flags := make([]string, len(missing))
		for i, name := range missing {
			flags[i] = "--" + name
		}
		// Callers pattern-match on the word "required"; keep it in the text.
		resp.SetError(http.StatusBadRequest, fmt.Sprintf("Missing required options: %s", strings.Join(flags, ", ")))
		return false
	}

	return true
}
