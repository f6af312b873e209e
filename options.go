// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import "github.com/yamldoc/yamldoc/internal/yamlcore"

//-----------------------------------------------------------------------------
// Options
//-----------------------------------------------------------------------------

type (
	// Option configures parsing, resolution and stringification.
	Option = yamlcore.Option
	// Options is the resolved configuration an Option mutates.
	Options = yamlcore.Options
	// ScalarOptions configures how scalar values are written.
	ScalarOptions = yamlcore.ScalarOptions
	// LogLevel controls which diagnostics the warning sink receives.
	LogLevel = yamlcore.LogLevel
)

// Log levels accepted by WithLogLevel.
const (
	LogSilent = yamlcore.LogSilent
	LogError  = yamlcore.LogError
	LogWarn   = yamlcore.LogWarn
	LogDebug  = yamlcore.LogDebug
)

// Option configuration functions
var (
	// WithAnchorPrefix sets the prefix for generated anchor names.
	//
	// The default is "a".
	WithAnchorPrefix = yamlcore.WithAnchorPrefix

	// WithIndent sets the number of spaces per nesting level when
	// stringifying.
	//
	// The minimum is 1; the default is 2.
	WithIndent = yamlcore.WithIndent

	// WithIndentSeq controls whether block sequences indent their '-'
	// marker relative to the parent key.
	//
	// The default is true.
	WithIndentSeq = yamlcore.WithIndentSeq

	// WithKeepCstNodes retains a CST back-reference on every resolved
	// node. The stringifier does not read it.
	//
	// The default is false.
	WithKeepCstNodes = yamlcore.WithKeepCstNodes

	// WithSetOrigRanges retrofits CR/LF-aware ranges on the parsed CST.
	//
	// The default is false.
	WithSetOrigRanges = yamlcore.WithSetOrigRanges

	// WithKeepNodeTypes preserves scalar styles across a round trip.
	//
	// The default is true.
	WithKeepNodeTypes = yamlcore.WithKeepNodeTypes

	// WithKeepUndefined keeps nil-valued map entries when building nodes
	// from host values.
	//
	// The default is false.
	WithKeepUndefined = yamlcore.WithKeepUndefined

	// WithMapAsMap converts YAML mappings to map[any]any instead of
	// map[string]any.
	//
	// The default is false.
	WithMapAsMap = yamlcore.WithMapAsMap

	// WithMaxAliasCount bounds the resolved subtree weight of any alias,
	// guarding against exponential expansion attacks. -1 disables the
	// guard and 0 disallows aliases entirely.
	//
	// The default is 100.
	WithMaxAliasCount = yamlcore.WithMaxAliasCount

	// WithPrettyErrors projects diagnostics onto line/column positions
	// with a caret-underlined snippet.
	//
	// The default is true.
	WithPrettyErrors = yamlcore.WithPrettyErrors

	// WithSimpleKeys forbids non-scalar mapping keys and explicit '?'
	// keys when stringifying.
	//
	// The default is false.
	WithSimpleKeys = yamlcore.WithSimpleKeys

	// WithVersion sets the YAML version documents default to: "1.0",
	// "1.1" or "1.2".
	//
	// The default is "1.2".
	WithVersion = yamlcore.WithVersion

	// WithSchema selects a built-in schema: "core", "failsafe", "json"
	// or "yaml-1.1".
	//
	// The default is "core".
	WithSchema = yamlcore.WithSchema

	// WithCustomTags extends the selected schema with extra tag
	// resolvers.
	WithCustomTags = yamlcore.WithCustomTags

	// WithLogLevel filters what the warning sink receives: "silent",
	// "error", "warn" or "debug".
	//
	// The default is "warn".
	WithLogLevel = yamlcore.WithLogLevel

	// WithLogger sets the warning sink. Parse installs a stderr logfmt
	// sink when none is configured.
	WithLogger = yamlcore.WithLogger

	// WithScalarOptions replaces the scalar presentation options
	// wholesale.
	WithScalarOptions = yamlcore.WithScalarOptions
)

// CombineOptions folds multiple options into a single Option, useful for
// presets.
func CombineOptions(opts ...Option) Option {
	return yamlcore.CombineOptions(opts...)
}

// DefaultScalarOptions returns a copy of the process-wide scalar
// presentation defaults.
func DefaultScalarOptions() ScalarOptions {
	return yamlcore.DefaultScalarOptions
}
