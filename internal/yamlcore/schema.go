// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Schema registry: tag tables for the failsafe, json, core and yaml-1.1
// schemas, with custom tag extension. A schema is an ordered list of tag
// resolvers; implicit resolution tries them in registration order and the
// first whose test matches wins.

package yamlcore

import (
	"encoding/base64"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TagResolver declares how one tag URI is recognised, resolved and
// written back out.
type TagResolver struct {
	// Tag is the full tag URI, e.g. "tag:yaml.org,2002:int".
	Tag string
	// NodeKind is the node kind the resolver accepts: ScalarType,
	// MapType or SeqType.
	NodeKind NodeType
	// Test matches raw plain-scalar text for implicit resolution; nil
	// resolvers match only explicit tags.
	Test *regexp.Regexp
	// Resolve converts matched raw text into a host value.
	Resolve func(raw string, opts *Options) (any, error)
	// Stringify renders a resolved value back to scalar text. A false
	// return falls through to the default rendering.
	Stringify func(v any, opts *Options) (string, bool)
	// Format labels values that keep a non-canonical notation, e.g.
	// "HEX"; the stringifier re-emits them in that notation.
	Format string
	// Style is the default scalar style for values of this tag.
	Style ScalarStyle
}

// Schema is a named, ordered set of tag resolvers.
type Schema struct {
	Name string
	Tags []*TagResolver
	// MergeKeys enables the YAML 1.1 '<<' merge key. It is always set for
	// the yaml-1.1 schema, and for core only when the version is 1.1.
	MergeKeys bool
}

// NewSchema builds one of the named schemas, adjusted for the YAML
// version, with custom tags appended. Unknown names are a programmer
// error.
func NewSchema(name, version string, custom []*TagResolver) (*Schema, error) {
	s := &Schema{Name: name}
	switch name {
	case "failsafe":
		s.Tags = failsafeTags()
	case "json":
		s.Tags = append(jsonTags(), failsafeTags()...)
	case "core":
		s.Tags = append(coreTags(version), failsafeTags()...)
		s.MergeKeys = version == "1.1"
	case "yaml-1.1":
		s.Tags = append(yaml11Tags(), failsafeTags()...)
		s.MergeKeys = true
	default:
		return nil, fmt.Errorf("yamldoc: unknown schema %q", name)
	}
	s.Tags = append(s.Tags, custom...)
	return s, nil
}

// ForTag returns the resolver registered for a tag URI and node kind, or
// nil.
func (s *Schema) ForTag(tag string, kind NodeType) *TagResolver {
	for _, t := range s.Tags {
		if t.Tag == tag && t.NodeKind == kind {
			return t
		}
	}
	return nil
}

// ResolveScalar runs implicit resolution over raw plain-scalar text and
// returns the winning resolver's tag and value. Text no resolver claims
// resolves as a plain string.
func (s *Schema) ResolveScalar(raw string, opts *Options) (string, any, error) {
	res, v, err := s.resolveImplicit(raw, opts)
	if res == nil {
		return StrTag, v, err
	}
	return res.Tag, v, err
}

// FallbackTag picks the shape-appropriate failsafe tag for a node kind.
func FallbackTag(kind NodeType) string {
	switch kind {
	case MapType:
		return MapTag
	case SeqType:
		return SeqTag
	}
	return StrTag
}

//-----------------------------------------------------------------------------
// failsafe
//-----------------------------------------------------------------------------

func failsafeTags() []*TagResolver {
	return []*TagResolver{
		{Tag: MapTag, NodeKind: MapType},
		{Tag: SeqTag, NodeKind: SeqType},
		{
			Tag:      StrTag,
			NodeKind: ScalarType,
			Resolve: func(raw string, _ *Options) (any, error) {
				return raw, nil
			},
		},
	}
}

//-----------------------------------------------------------------------------
// json
//-----------------------------------------------------------------------------

var (
	jsonNullRE  = regexp.MustCompile(`^null$`)
	jsonBoolRE  = regexp.MustCompile(`^(?:true|false)$`)
	jsonIntRE   = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)$`)
	jsonFloatRE = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?$`)
)

func jsonTags() []*TagResolver {
	return []*TagResolver{
		nullResolver(jsonNullRE),
		boolResolver(jsonBoolRE),
		intResolver(jsonIntRE, 10, ""),
		floatResolver(jsonFloatRE),
	}
}

//-----------------------------------------------------------------------------
// core
//-----------------------------------------------------------------------------

var (
	coreNullRE   = regexp.MustCompile(`^(?:~|[Nn]ull|NULL|)$`)
	coreBoolRE   = regexp.MustCompile(`^(?:[Tt]rue|TRUE|[Ff]alse|FALSE)$`)
	core11BoolRE = regexp.MustCompile(
		`^(?:[Tt]rue|TRUE|[Ff]alse|FALSE|[Yy]es|YES|[Nn]o|NO|[Oo]n|ON|[Oo]ff|OFF)$`)
	coreIntRE   = regexp.MustCompile(`^[-+]?[0-9]+$`)
	coreOctRE   = regexp.MustCompile(`^0o[0-7]+$`)
	coreHexRE   = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	coreFloatRE = regexp.MustCompile(
		`^[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?$`)
	coreInfRE = regexp.MustCompile(`^[-+]?\.(?:inf|Inf|INF)$`)
	coreNanRE = regexp.MustCompile(`^\.(?:nan|NaN|NAN)$`)
)

func coreTags(version string) []*TagResolver {
	boolRE := coreBoolRE
	if version == "1.1" {
		boolRE = core11BoolRE
	}
	// Binary and timestamp resolve under core on explicit tags only, so
	// values carrying those tags survive a round trip without widening
	// implicit resolution.
	explicitTime := *timestampResolver()
	explicitTime.Test = nil
	return []*TagResolver{
		nullResolver(coreNullRE),
		boolResolver(boolRE),
		intResolver(coreIntRE, 10, ""),
		intResolver(coreOctRE, 8, "OCT"),
		intResolver(coreHexRE, 16, "HEX"),
		floatResolver(coreFloatRE),
		infResolver(),
		nanResolver(),
		binaryResolver(),
		&explicitTime,
	}
}

//-----------------------------------------------------------------------------
// yaml-1.1
//-----------------------------------------------------------------------------

var (
	y11IntRE = regexp.MustCompile(`^[-+]?[0-9]+$`)
	y11BinRE = regexp.MustCompile(`^0b[01]+$`)
	y11OctRE = regexp.MustCompile(`^0[0-7]+$`)
	y11HexRE = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
)

func yaml11Tags() []*TagResolver {
	tags := []*TagResolver{
		nullResolver(coreNullRE),
		boolResolver(core11BoolRE),
		intResolver(y11BinRE, 2, "BIN"),
		intResolver(y11OctRE, 8, "OCT"),
		intResolver(y11IntRE, 10, ""),
		intResolver(y11HexRE, 16, "HEX"),
		floatResolver(coreFloatRE),
		infResolver(),
		nanResolver(),
		timestampResolver(),
		binaryResolver(),
		{Tag: MergeTag, NodeKind: ScalarType,
			Test: regexp.MustCompile(`^<<$`),
			Resolve: func(raw string, _ *Options) (any, error) {
				return raw, nil
			},
		},
		{Tag: OMapTag, NodeKind: SeqType},
		{Tag: PairsTag, NodeKind: SeqType},
		{Tag: SetTag, NodeKind: MapType},
	}
	return tags
}

//-----------------------------------------------------------------------------
// Shared scalar resolvers
//-----------------------------------------------------------------------------

func nullResolver(re *regexp.Regexp) *TagResolver {
	return &TagResolver{
		Tag:      NullTag,
		NodeKind: ScalarType,
		Test:     re,
		Resolve: func(string, *Options) (any, error) {
			return nil, nil
		},
		Stringify: func(_ any, opts *Options) (string, bool) {
			return opts.Scalar.Null.NullStr, true
		},
	}
}

func boolResolver(re *regexp.Regexp) *TagResolver {
	return &TagResolver{
		Tag:      BoolTag,
		NodeKind: ScalarType,
		Test:     re,
		Resolve: func(raw string, _ *Options) (any, error) {
			switch raw[0] {
			case 't', 'T', 'y', 'Y':
				return true, nil
			case 'o', 'O':
				return len(raw) == 2 || len(raw) == 3 && (raw[1] == 'n' || raw[1] == 'N'), nil
			}
			return false, nil
		},
		Stringify: func(v any, opts *Options) (string, bool) {
			if b, ok := v.(bool); ok {
				if b {
					return opts.Scalar.Bool.TrueStr, true
				}
				return opts.Scalar.Bool.FalseStr, true
			}
			return "", false
		},
	}
}

func intResolver(re *regexp.Regexp, base int, format string) *TagResolver {
	return &TagResolver{
		Tag:      IntTag,
		NodeKind: ScalarType,
		Test:     re,
		Format:   format,
		Resolve: func(raw string, opts *Options) (any, error) {
			digits := raw
			switch format {
			case "HEX", "BIN":
				digits = raw[2:]
			case "OCT":
				digits = strings.TrimPrefix(strings.TrimPrefix(raw, "0o"), "0")
				if digits == "" {
					digits = "0"
				}
			}
			if opts != nil && opts.Scalar.Int.AsBigInt {
				n := new(big.Int)
				if _, ok := n.SetString(digits, base); !ok {
					return nil, fmt.Errorf("cannot parse %q as a base-%d integer", raw, base)
				}
				return n, nil
			}
			n, err := strconv.ParseInt(digits, base, 64)
			if err != nil {
				// Out-of-range decimals degrade to big integers rather
				// than losing precision.
				bi := new(big.Int)
				if _, ok := bi.SetString(digits, base); ok {
					return bi, nil
				}
				return nil, fmt.Errorf("cannot parse %q as an integer", raw)
			}
			return n, nil
		},
	}
}

func floatResolver(re *regexp.Regexp) *TagResolver {
	return &TagResolver{
		Tag:      FloatTag,
		NodeKind: ScalarType,
		Test:     re,
		Resolve: func(raw string, _ *Options) (any, error) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as a float", raw)
			}
			return f, nil
		},
	}
}

func infResolver() *TagResolver {
	return &TagResolver{
		Tag:      FloatTag,
		NodeKind: ScalarType,
		Test:     coreInfRE,
		Format:   "INF",
		Resolve: func(raw string, _ *Options) (any, error) {
			if raw[0] == '-' {
				return math.Inf(-1), nil
			}
			return math.Inf(1), nil
		},
	}
}

func nanResolver() *TagResolver {
	return &TagResolver{
		Tag:      FloatTag,
		NodeKind: ScalarType,
		Test:     coreNanRE,
		Format:   "NAN",
		Resolve: func(string, *Options) (any, error) {
			return math.NaN(), nil
		},
	}
}

var timestampLayouts = []string{
	"2006-1-2T15:4:5.999999999Z07:00",
	"2006-1-2T15:4:5.999999999",
	"2006-1-2t15:4:5.999999999Z07:00",
	"2006-1-2 15:4:5.999999999",
	"2006-1-2 15:4:5.999999999 Z07:00",
	"2006-1-2 15:4:5.999999999 -7",
	"2006-1-2",
}

func timestampResolver() *TagResolver {
	re := regexp.MustCompile(
		`^\d{4}-\d{1,2}-\d{1,2}(?:(?:[Tt]|[ \t]+)\d{1,2}:\d{1,2}:\d{1,2}(?:\.\d*)?(?:[ \t]*(?:Z|[-+]\d{1,2}(?::\d{1,2})?))?)?$`)
	return &TagResolver{
		Tag:      TimestampTag,
		NodeKind: ScalarType,
		Test:     re,
		Format:   "TIME",
		Resolve: func(raw string, _ *Options) (any, error) {
			for _, layout := range timestampLayouts {
				if t, err := time.Parse(layout, raw); err == nil {
					return t, nil
				}
			}
			return nil, fmt.Errorf("cannot parse %q as a timestamp", raw)
		},
		Stringify: func(v any, _ *Options) (string, bool) {
			if t, ok := v.(time.Time); ok {
				return t.UTC().Format("2006-01-02T15:04:05Z"), true
			}
			return "", false
		},
	}
}

func binaryResolver() *TagResolver {
	return &TagResolver{
		Tag:      BinaryTag,
		NodeKind: ScalarType,
		Style:    BlockLiteral,
		Resolve: func(raw string, _ *Options) (any, error) {
			clean := strings.Map(func(r rune) rune {
				switch r {
				case ' ', '\t', '\n':
					return -1
				}
				return r
			}, raw)
			b, err := base64.StdEncoding.DecodeString(clean)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as base64 binary data", raw)
			}
			return b, nil
		},
		Stringify: func(v any, opts *Options) (string, bool) {
			b, ok := v.([]byte)
			if !ok {
				return "", false
			}
			enc := base64.StdEncoding.EncodeToString(b)
			width := opts.Scalar.Binary.LineWidth
			if width <= 0 || len(enc) <= width {
				return enc, true
			}
			var sb strings.Builder
			for len(enc) > width {
				sb.WriteString(enc[:width])
				sb.WriteByte('\n')
				enc = enc[width:]
			}
			sb.WriteString(enc)
			return sb.String(), true
		},
	}
}
