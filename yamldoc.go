// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package yamldoc converts between textual YAML streams, an in-memory
// document model and native Go values.
//
// The pipeline has three layers: a concrete-syntax-tree parser that keeps
// every byte of the original text (ParseCST), a resolver that turns CST
// documents into typed documents under a schema (ParseDocument,
// ParseAllDocuments), and a stringifier that writes documents back out
// (Stringify). The high-level helpers Parse and Stringify convert all the
// way to and from Go values.
//
// This file contains:
// - The high-level Parse/Stringify helpers
// - Document-level entry points (ParseDocument, ParseAllDocuments, ParseCST)
// - CreateNode and Visit
// - The default warning sink
package yamldoc

import (
	"errors"
	"os"
	"strconv"

	"github.com/go-kit/log"

	"github.com/yamldoc/yamldoc/internal/yamlcore"
)

// Reviver transforms converted values bottom-up during Parse, in the
// manner of JSON parsing revivers. Returning nil drops map entries.
type Reviver func(key string, value any) any

// Replacer transforms host values top-down before Stringify converts them
// to nodes. The second return drops the value when false.
type Replacer func(key string, value any) (any, bool)

// ParseCST parses source into a stream of concrete-syntax-tree documents.
// It never fails; syntax problems are recorded on the stream's documents
// and surface when the documents are resolved.
func ParseCST(src string) *CSTStream {
	return yamlcore.ParseCST(src)
}

// ParseAllDocuments parses and resolves every document in the stream. The
// returned error is reserved for invalid options; data problems are
// collected on each document.
func ParseAllDocuments(src string, opts ...Option) ([]*Document, error) {
	o, err := yamlcore.BuildOptions(opts...)
	if err != nil {
		return nil, err
	}
	stream := yamlcore.ParseCST(src)
	if o.SetOrigRanges {
		stream.SetOrigRanges()
	}
	return yamlcore.ResolveStream(stream, o)
}

// ParseDocument parses and resolves the first document of the stream.
// Surplus documents are reported as an error on the returned document.
func ParseDocument(src string, opts ...Option) (*Document, error) {
	docs, err := ParseAllDocuments(src, opts...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("yamldoc: source contained no documents")
	}
	doc := docs[0]
	if len(docs) > 1 {
		doc.Errors = append(doc.Errors, &Error{
			Name:    yamlcore.SemanticErrorName,
			Message: "Source contains multiple documents; please use ParseAllDocuments",
		})
	}
	return doc, nil
}

// Parse converts YAML source into a native Go value. The first collected
// error is returned; warnings go to the configured sink.
func Parse(src string, opts ...Option) (any, error) {
	return ParseWithReviver(src, nil, opts...)
}

// ParseWithReviver is Parse with a reviver applied to the converted value
// tree.
func ParseWithReviver(src string, reviver Reviver, opts ...Option) (any, error) {
	doc, err := ParseDocument(src, withDefaultLogger(opts)...)
	if err != nil {
		return nil, err
	}
	if err := doc.FirstError(); err != nil {
		return nil, err
	}
	v, err := doc.ToGo()
	if err != nil {
		return nil, err
	}
	if reviver != nil {
		v = yamlcore.ApplyReviver(reviver, v)
	}
	return v, nil
}

// Stringify renders a host value, node or document as YAML text. Output
// always ends with a line break; a document carrying errors is refused.
func Stringify(value any, opts ...Option) (string, error) {
	return StringifyWithReplacer(value, nil, opts...)
}

// StringifyWithReplacer is Stringify with a replacer applied to the host
// value tree first.
func StringifyWithReplacer(value any, replacer Replacer, opts ...Option) (string, error) {
	o, err := yamlcore.BuildOptions(opts...)
	if err != nil {
		return "", err
	}
	if doc, ok := value.(*Document); ok {
		if doc.Options == nil {
			doc.Options = o
		}
		return yamlcore.StringifyDocument(doc)
	}
	if replacer != nil {
		var keep bool
		value, keep = applyReplacer(replacer, "", value)
		if !keep {
			value = nil
		}
	}
	doc, err := yamlcore.NewDocument(o)
	if err != nil {
		return "", err
	}
	if n, ok := value.(Node); ok {
		doc.Contents = n
	} else {
		doc.Contents, err = yamlcore.CreateNode(value, true, "", o)
		if err != nil {
			return "", err
		}
	}
	return yamlcore.StringifyDocument(doc)
}

func applyReplacer(replacer Replacer, key string, v any) (any, bool) {
	v, keep := replacer(key, v)
	if !keep {
		return nil, false
	}
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, mv := range t {
			if rv, ok := applyReplacer(replacer, k, mv); ok {
				out[k] = rv
			}
		}
		return out, true
	case []any:
		out := make([]any, 0, len(t))
		for i, sv := range t {
			if rv, ok := applyReplacer(replacer, strconv.Itoa(i), sv); ok {
				out = append(out, rv)
			}
		}
		return out, true
	}
	return v, true
}

// CreateNode converts a host value into an AST node under the default
// options. wrapScalars and tag follow the documented semantics of
// yamlcore.CreateNode.
func CreateNode(value any, wrapScalars bool, tag string) (Node, error) {
	o := yamlcore.DefaultOptions
	return yamlcore.CreateNode(value, wrapScalars, tag, &o)
}

// Visit walks the tree rooted at n depth first; see the yamlcore package
// for the action verbs.
func Visit(n Node, fn VisitorFunc) Node {
	return yamlcore.Visit(n, fn)
}

// VisitWithTable walks with a per-kind dispatch table.
func VisitWithTable(n Node, table VisitorTable) Node {
	return yamlcore.VisitTable(n, table)
}

// withDefaultLogger appends a stderr logfmt sink unless the caller set
// one, so warnings surface under the default log level.
func withDefaultLogger(opts []Option) []Option {
	head := Option(func(o *yamlcore.Options) error {
		if o.Logger == nil {
			o.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		}
		return nil
	})
	// The caller's options run last so an explicit logger wins.
	return append([]Option{head}, opts...)
}
