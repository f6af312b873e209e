// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Diagnostics for YAML parsing, resolution and stringification.
// Errors are collected on the document rather than returned eagerly; the
// high-level helpers decide whether to surface them.

package yamlcore

import (
	"fmt"
	"strings"
)

// ErrorName partitions diagnostics into the three error kinds plus
// warnings.
type ErrorName string

const (
	SyntaxErrorName    ErrorName = "YAMLSyntaxError"
	SemanticErrorName  ErrorName = "YAMLSemanticError"
	ReferenceErrorName ErrorName = "YAMLReferenceError"
	WarningName        ErrorName = "YAMLWarning"
)

// LinePos is a (line, column) pair, both 1-indexed.
type LinePos struct {
	Line int
	Col  int
}

// LineSpan is the line/column projection of a Range.
type LineSpan struct {
	Start LinePos
	End   LinePos
}

// Error is a diagnostic bound to a span of the source.
//
// Until MakePretty is called, Source retains the offending CST node and
// LinePos is nil. MakePretty fills LinePos, rewrites Message into a
// multi-line caret-underlined form and drops the Source back-reference.
type Error struct {
	Name     ErrorName
	Message  string
	NodeType NodeType
	Range    Range
	LinePos  *LineSpan
	Source   *CSTNode
}

func (e *Error) Error() string {
	if e.LinePos != nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// IsWarning reports whether the diagnostic is a warning rather than an
// error.
func (e *Error) IsWarning() bool { return e.Name == WarningName }

// MakePretty projects the error's range onto line/column positions over
// src, appends a caret-underlined snippet to the message and drops the
// CST back-reference.
func (e *Error) MakePretty(src string) {
	if e.LinePos != nil {
		return
	}
	starts := lineStarts(src)
	start := markAt(starts, e.Range.Start)
	end := markAt(starts, e.Range.End)
	e.LinePos = &LineSpan{
		Start: LinePos{Line: start.Line, Col: start.Col},
		End:   LinePos{Line: end.Line, Col: end.Col},
	}
	e.Source = nil

	var b strings.Builder
	fmt.Fprintf(&b, "%s at line %d, column %d:\n\n", e.Message, start.Line, start.Col)
	lineStart := starts[start.Line-1]
	lineEnd := len(src)
	if start.Line < len(starts) {
		lineEnd = starts[start.Line] - 1
	}
	line := src[lineStart:lineEnd]
	if len(line) > 80 {
		line = line[:80]
	}
	b.WriteString(line)
	b.WriteByte('\n')
	count := 1
	if end.Line == start.Line && end.Col > start.Col {
		count = end.Col - start.Col
	}
	if start.Col-1+count > len(line) {
		count = len(line) - start.Col + 1
		if count < 1 {
			count = 1
		}
	}
	b.WriteString(strings.Repeat(" ", start.Col-1))
	b.WriteString(strings.Repeat("^", count))
	e.Message = b.String()
}

// syntaxError builds a YAMLSyntaxError over the given CST node.
func syntaxError(source *CSTNode, rng Range, msg string) *Error {
	return newError(SyntaxErrorName, source, rng, msg)
}

// semanticError builds a YAMLSemanticError over the given CST node.
func semanticError(source *CSTNode, rng Range, msg string) *Error {
	return newError(SemanticErrorName, source, rng, msg)
}

// referenceError builds a YAMLReferenceError over the given CST node.
func referenceError(source *CSTNode, rng Range, msg string) *Error {
	return newError(ReferenceErrorName, source, rng, msg)
}

// warning builds a YAMLWarning over the given CST node.
func warning(source *CSTNode, rng Range, msg string) *Error {
	return newError(WarningName, source, rng, msg)
}

func newError(name ErrorName, source *CSTNode, rng Range, msg string) *Error {
	e := &Error{Name: name, Message: msg, Range: rng, Source: source}
	if source != nil {
		e.NodeType = source.Type
	}
	return e
}

// Errors is a list of diagnostics implementing error, in discovery order.
type Errors []*Error

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return ""
	case 1:
		return es[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d YAML errors:", len(es))
	for _, e := range es {
		b.WriteString("\n  ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Unwrap returns the individual diagnostics for errors.As/Is.
func (es Errors) Unwrap() []error {
	errs := make([]error, len(es))
	for i, e := range es {
		errs[i] = e
	}
	return errs
}
