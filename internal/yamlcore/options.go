// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Option handling for parsing and stringification.
// Options are functional; the process-wide defaults are read once at each
// entry point and an explicit *Options context is passed down the call
// stack from there.

package yamlcore

import (
	"errors"
	"fmt"

	"github.com/go-kit/log"
)

// LogLevel controls which diagnostics the warning sink receives.
type LogLevel string

const (
	LogSilent LogLevel = "silent"
	LogError  LogLevel = "error"
	LogWarn   LogLevel = "warn"
	LogDebug  LogLevel = "debug"
)

// Options configures parsing, resolution and stringification.
type Options struct {
	// AnchorPrefix is prepended to generated anchor names.
	AnchorPrefix string
	// Indent is the number of spaces per nesting level.
	Indent int
	// IndentSeq indents the '-' marker of block sequences.
	IndentSeq bool
	// KeepCstNodes retains a CST back-reference on every resolved node.
	KeepCstNodes bool
	// SetOrigRanges retrofits CR/LF-aware ranges on the parsed CST.
	SetOrigRanges bool
	// KeepNodeTypes preserves scalar styles across a round trip.
	KeepNodeTypes bool
	// KeepUndefined emits null for nil values handed to CreateNode.
	KeepUndefined bool
	// MapAsMap converts mappings to map[any]any instead of
	// map[string]any.
	MapAsMap bool
	// MaxAliasCount bounds the resolved subtree weight of any alias.
	// -1 disables the guard; 0 disallows all aliases.
	MaxAliasCount int
	// PrettyErrors adds line/column positions and caret underlines to
	// diagnostics.
	PrettyErrors bool
	// SimpleKeys forbids non-scalar mapping keys and explicit '?' keys
	// when stringifying.
	SimpleKeys bool
	// Version is the YAML version resolved documents default to.
	Version string
	// SchemaName selects the built-in schema: "core", "failsafe",
	// "json" or "yaml-1.1".
	SchemaName string
	// CustomTags extends the selected schema.
	CustomTags []*TagResolver
	// LogLevel filters what the warning sink receives.
	LogLevel LogLevel
	// Logger is the warning sink. When nil, diagnostics are only
	// collected on the document.
	Logger log.Logger

	// Scalar carries the scalar presentation options.
	Scalar ScalarOptions
}

// ScalarOptions configures how scalar values are written.
type ScalarOptions struct {
	Binary BinaryOptions
	Bool   BoolOptions
	Int    IntOptions
	Null   NullOptions
	Str    StrOptions
}

type BinaryOptions struct {
	// DefaultType is the style used for !!binary values: BlockLiteral
	// or QuoteDouble.
	DefaultType ScalarStyle
	// LineWidth wraps the base64 text at this many columns.
	LineWidth int
}

type BoolOptions struct {
	TrueStr  string
	FalseStr string
}

type IntOptions struct {
	// AsBigInt resolves integers as *big.Int rather than int64.
	AsBigInt bool
}

type NullOptions struct {
	NullStr string
}

type StrOptions struct {
	DefaultType       ScalarStyle
	DefaultKeyType    ScalarStyle
	DefaultQuoteSingle bool
	DoubleQuoted      DoubleQuotedOptions
	Fold              FoldOptions
}

type DoubleQuotedOptions struct {
	// JSONEncoding restricts escapes to the JSON-compatible set.
	JSONEncoding bool
	// MinMultiLineLength is the shortest string that may be broken
	// across lines inside double quotes.
	MinMultiLineLength int
}

type FoldOptions struct {
	// LineWidth is the column folding aims for; 0 disables folding.
	LineWidth int
	// MinContentWidth keeps at least this much content per line when
	// the indent is large.
	MinContentWidth int
}

// DefaultOptions is the process-wide configuration read at every entry
// point. It is intended to be adjusted once at start-up.
var DefaultOptions = Options{
	AnchorPrefix:  "a",
	Indent:        2,
	IndentSeq:     true,
	KeepNodeTypes: true,
	MaxAliasCount: 100,
	PrettyErrors:  true,
	Version:       "1.2",
	SchemaName:    "core",
	LogLevel:      LogWarn,
	Scalar:        DefaultScalarOptions,
}

// DefaultScalarOptions is the process-wide scalar presentation
// configuration.
var DefaultScalarOptions = ScalarOptions{
	Binary: BinaryOptions{DefaultType: BlockLiteral, LineWidth: 76},
	Bool:   BoolOptions{TrueStr: "true", FalseStr: "false"},
	Null:   NullOptions{NullStr: "null"},
	Str: StrOptions{
		DefaultType:    Plain,
		DefaultKeyType: Plain,
		DoubleQuoted:   DoubleQuotedOptions{MinMultiLineLength: 40},
		Fold:           FoldOptions{LineWidth: 80, MinContentWidth: 20},
	},
}

// Option mutates an Options value and may reject invalid settings.
type Option func(*Options) error

// CombineOptions folds multiple options into one.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

// BuildOptions applies opts on top of DefaultOptions.
func BuildOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions
	if err := CombineOptions(opts...)(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

// WithAnchorPrefix sets the prefix for generated anchor names.
func WithAnchorPrefix(prefix string) Option {
	return func(o *Options) error {
		if prefix == "" {
			return errors.New("yamldoc: anchor prefix must not be empty")
		}
		o.AnchorPrefix = prefix
		return nil
	}
}

// WithIndent sets the number of spaces per nesting level.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 1 {
			return errors.New("yamldoc: indent must be at least 1 space")
		}
		o.Indent = indent
		return nil
	}
}

// WithIndentSeq controls whether block sequences indent their '-' marker.
func WithIndentSeq(indent bool) Option {
	return func(o *Options) error {
		o.IndentSeq = indent
		return nil
	}
}

// WithKeepCstNodes retains CST back-references on resolved nodes.
func WithKeepCstNodes(keep bool) Option {
	return func(o *Options) error {
		o.KeepCstNodes = keep
		return nil
	}
}

// WithSetOrigRanges retrofits CR/LF-aware ranges after parsing.
func WithSetOrigRanges(set bool) Option {
	return func(o *Options) error {
		o.SetOrigRanges = set
		return nil
	}
}

// WithKeepNodeTypes preserves scalar styles across a round trip.
func WithKeepNodeTypes(keep bool) Option {
	return func(o *Options) error {
		o.KeepNodeTypes = keep
		return nil
	}
}

// WithKeepUndefined emits null for nil values handed to CreateNode.
func WithKeepUndefined(keep bool) Option {
	return func(o *Options) error {
		o.KeepUndefined = keep
		return nil
	}
}

// WithMapAsMap converts mappings to map[any]any instead of
// map[string]any.
func WithMapAsMap(asMap bool) Option {
	return func(o *Options) error {
		o.MapAsMap = asMap
		return nil
	}
}

// WithMaxAliasCount bounds the resolved subtree weight of any alias.
func WithMaxAliasCount(n int) Option {
	return func(o *Options) error {
		if n < -1 {
			return errors.New("yamldoc: max alias count must be -1, 0 or positive")
		}
		o.MaxAliasCount = n
		return nil
	}
}

// WithPrettyErrors toggles line/column projection on diagnostics.
func WithPrettyErrors(pretty bool) Option {
	return func(o *Options) error {
		o.PrettyErrors = pretty
		return nil
	}
}

// WithSimpleKeys forbids non-scalar mapping keys when stringifying.
func WithSimpleKeys(simple bool) Option {
	return func(o *Options) error {
		o.SimpleKeys = simple
		return nil
	}
}

// WithVersion sets the YAML version documents default to.
func WithVersion(version string) Option {
	return func(o *Options) error {
		if version != "1.0" && version != "1.1" && version != "1.2" {
			return fmt.Errorf("yamldoc: unsupported YAML version %q", version)
		}
		o.Version = version
		return nil
	}
}

// WithSchema selects a built-in schema by name.
func WithSchema(name string) Option {
	return func(o *Options) error {
		switch name {
		case "core", "failsafe", "json", "yaml-1.1":
			o.SchemaName = name
			return nil
		}
		return fmt.Errorf("yamldoc: unknown schema %q", name)
	}
}

// WithCustomTags extends the selected schema with extra tag resolvers.
func WithCustomTags(tags ...*TagResolver) Option {
	return func(o *Options) error {
		for _, t := range tags {
			if t == nil || t.Tag == "" {
				return errors.New("yamldoc: custom tags must carry a tag URI")
			}
		}
		o.CustomTags = append(o.CustomTags, tags...)
		return nil
	}
}

// WithLogLevel filters what the warning sink receives.
func WithLogLevel(lvl LogLevel) Option {
	return func(o *Options) error {
		switch lvl {
		case LogSilent, LogError, LogWarn, LogDebug:
			o.LogLevel = lvl
			return nil
		}
		return fmt.Errorf("yamldoc: unknown log level %q", lvl)
	}
}

// WithLogger sets the warning sink.
func WithLogger(l log.Logger) Option {
	return func(o *Options) error {
		o.Logger = l
		return nil
	}
}

// WithScalarOptions replaces the scalar presentation options wholesale.
func WithScalarOptions(so ScalarOptions) Option {
	return func(o *Options) error {
		o.Scalar = so
		return nil
	}
}

// logWarning forwards a collected warning to the configured sink,
// honouring the log level.
func (o *Options) logWarning(e *Error) {
	if o.Logger == nil || o.LogLevel == LogSilent || o.LogLevel == LogError {
		return
	}
	o.Logger.Log("level", "warn", "msg", e.Message)
}

// logDebug forwards a debug message to the configured sink.
func (o *Options) logDebug(msg string) {
	if o.Logger == nil || o.LogLevel != LogDebug {
		return
	}
	o.Logger.Log("level", "debug", "msg", msg)
}
