// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Concrete syntax tree node model.
// The CST is the authoritative record of the original syntax: it preserves
// comments, blank lines and the raw text of every scalar. It is mutable
// while the parser builds it and treated as frozen afterwards.

package yamlcore

// CSTStream is the result of parsing one source string: an ordered list of
// document nodes over a shared, line-break-normalised copy of the source.
type CSTStream struct {
	// Source is the normalised source text all ranges point into.
	Source string
	// OrigSource is the text as given, before CR LF normalisation.
	OrigSource string
	Docs       []*CSTDocument

	// crOffsets holds the normalised offsets whose original position was
	// preceded by a removed CR.
	crOffsets []int
	origSet   bool
}

// HasCR reports whether the original source contained CR characters.
func (s *CSTStream) HasCR() bool { return len(s.crOffsets) > 0 }

// CSTDocument is one document of a stream.
type CSTDocument struct {
	Range Range

	Directives       []*CSTNode
	HasDirectivesEnd bool
	DirectivesEndPos Range
	Contents         *CSTNode
	HasDocEnd        bool
	DocEndPos        Range

	CommentBefore []string
	Comment       string

	// Errors holds the parse diagnostics bound to this document's nodes.
	Errors Errors
}

// CSTContext records where a node sits in its surrounding syntax.
type CSTContext struct {
	// ParentIndent is the indentation floor imposed by the enclosing
	// construct; -1 at document level.
	ParentIndent int
	// AtLineStart reports whether the node began its own line.
	AtLineStart bool
	// InFlow reports whether the node sits inside {...} or [...].
	InFlow bool
	// InCollection reports whether the node is a collection item.
	InCollection bool

	// allowSeqAtParent lets a block sequence start in the parent's own
	// column, which block mappings permit for their values.
	allowSeqAtParent bool
}

// CSTNode is a discriminated variant over the CST node types. The payload
// fields used depend on Type; unused ones stay zero.
type CSTNode struct {
	Type    NodeType
	Range   Range
	Context CSTContext

	// Properties preceding the value.
	Anchor      string
	AnchorRange Range
	TagHandle   string // "!", "!!" or "!name!"; empty for verbatim tags
	TagSuffix   string
	TagVerbatim string // the URI of a !<...> tag
	TagRange    Range

	CommentBefore []string
	Comment       string

	// Scalar carriers (PLAIN, QUOTE_*, BLOCK_*, ALIAS, DIRECTIVE name).
	Raw   string // the raw source text of the value
	Value string // the decoded string value

	// Block scalar header (BLOCK_LITERAL, BLOCK_FOLDED).
	IndentHint int  // explicit indentation indicator digit, 0 if absent
	Chomping   byte // '-', '+' or 0 for clip

	// Directive payload (DIRECTIVE).
	Name       string
	Parameters []string

	// Collection payload (BLOCK_MAP, BLOCK_SEQ, FLOW_MAP, FLOW_SEQ).
	Items []*CSTItem
}

// HasTag reports whether any tag property is present.
func (n *CSTNode) HasTag() bool {
	return n.TagHandle != "" || n.TagVerbatim != ""
}

// CSTItem is one entry of a CST collection. Sequence items and flow values
// leave Key nil; a mapping item with an empty key keeps Key nil and marks
// the position through Range.
type CSTItem struct {
	// Indent is the column the item starts at (block collections).
	Indent      int
	ExplicitKey bool
	Key         *CSTNode
	Value       *CSTNode
	Range       Range
}

// SetOrigRanges retrofits every Range in the stream with offsets into the
// original, unnormalised source. It reports whether the source contained
// any CR character; when it did not, ranges are copied unchanged.
func (s *CSTStream) SetOrigRanges() bool {
	if s.origSet {
		return s.HasCR()
	}
	s.origSet = true
	for _, doc := range s.Docs {
		s.origDoc(doc)
	}
	return s.HasCR()
}

func (s *CSTStream) origDoc(doc *CSTDocument) {
	doc.Range = s.origRange(doc.Range)
	doc.DirectivesEndPos = s.origRange(doc.DirectivesEndPos)
	doc.DocEndPos = s.origRange(doc.DocEndPos)
	for _, d := range doc.Directives {
		s.origNode(d)
	}
	s.origNode(doc.Contents)
	for _, e := range doc.Errors {
		e.Range = s.origRange(e.Range)
	}
}

func (s *CSTStream) origNode(n *CSTNode) {
	if n == nil {
		return
	}
	n.Range = s.origRange(n.Range)
	n.AnchorRange = s.origRange(n.AnchorRange)
	n.TagRange = s.origRange(n.TagRange)
	for _, item := range n.Items {
		item.Range = s.origRange(item.Range)
		s.origNode(item.Key)
		s.origNode(item.Value)
	}
}

// origRange maps a normalised range onto the original source by counting
// the CRs removed before each endpoint.
func (s *CSTStream) origRange(r Range) Range {
	r.OrigStart = r.Start + countLE(s.crOffsets, r.Start)
	r.OrigEnd = r.End + countLE(s.crOffsets, r.End)
	return r
}

// countLE returns how many sorted offsets are <= x.
func countLE(offsets []int, x int) int {
	n := 0
	for _, o := range offsets {
		if o > x {
			break
		}
		n++
	}
	return n
}
