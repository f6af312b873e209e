// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Core types shared by every pipeline stage.
// Defines source positions, node ranges, node type constants and the
// standard YAML tag URIs.

package yamlcore

import (
	"fmt"
	"sort"
	"strings"
)

// Mark holds a position in the source stream.
type Mark struct {
	Index int // The byte offset.
	Line  int // The position line (1-indexed).
	Col   int // The position column (1-indexed).
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}
	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Col != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Col)
	}
	return builder.String()
}

// Range is a half-open byte span [Start, End) into the parsed source, whose
// CR LF and lone CR line breaks have been normalised to LF.
//
// OrigStart and OrigEnd are only populated by CSTStream.SetOrigRanges, which
// retrofits offsets into the pre-normalisation source when the input
// contained CR LF line breaks. Before that call they are zero and Start/End
// are authoritative.
type Range struct {
	Start, End         int
	OrigStart, OrigEnd int
}

// IsEmpty reports whether the range spans no bytes.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// NodeType identifies the concrete variant of a CST or AST node.
type NodeType int8

const (
	NoType NodeType = iota

	// CST node types.
	DocumentType
	DirectiveType
	BlockMapType
	BlockSeqType
	FlowMapType
	FlowSeqType
	PlainType
	QuoteDoubleType
	QuoteSingleType
	BlockLiteralType
	BlockFoldedType
	AliasValType
	CommentType
	BlankLineType

	// AST node types.
	ScalarType
	MapType
	SeqType
	PairType
	MergePairType
	AliasType
)

var nodeTypeStrings = []string{
	NoType:           "UNKNOWN",
	DocumentType:     "DOCUMENT",
	DirectiveType:    "DIRECTIVE",
	BlockMapType:     "BLOCK_MAP",
	BlockSeqType:     "BLOCK_SEQ",
	FlowMapType:      "FLOW_MAP",
	FlowSeqType:      "FLOW_SEQ",
	PlainType:        "PLAIN",
	QuoteDoubleType:  "QUOTE_DOUBLE",
	QuoteSingleType:  "QUOTE_SINGLE",
	BlockLiteralType: "BLOCK_LITERAL",
	BlockFoldedType:  "BLOCK_FOLDED",
	AliasValType:     "ALIAS",
	CommentType:      "COMMENT",
	BlankLineType:    "BLANK_LINE",
	ScalarType:       "SCALAR",
	MapType:          "MAP",
	SeqType:          "SEQ",
	PairType:         "PAIR",
	MergePairType:    "MERGE_PAIR",
	AliasType:        "ALIAS",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeStrings) {
		return fmt.Sprintf("unknown node type %d", t)
	}
	return nodeTypeStrings[t]
}

// ScalarStyle identifies the presentation style of a scalar node.
type ScalarStyle int8

const (
	Plain ScalarStyle = iota
	QuoteSingle
	QuoteDouble
	BlockLiteral
	BlockFolded
)

var scalarStyleStrings = []string{
	Plain:        "PLAIN",
	QuoteSingle:  "QUOTE_SINGLE",
	QuoteDouble:  "QUOTE_DOUBLE",
	BlockLiteral: "BLOCK_LITERAL",
	BlockFolded:  "BLOCK_FOLDED",
}

func (s ScalarStyle) String() string {
	if s < 0 || int(s) >= len(scalarStyleStrings) {
		return fmt.Sprintf("unknown scalar style %d", s)
	}
	return scalarStyleStrings[s]
}

// Standard YAML tag URIs.
const (
	NullTag      = "tag:yaml.org,2002:null"
	BoolTag      = "tag:yaml.org,2002:bool"
	StrTag       = "tag:yaml.org,2002:str"
	IntTag       = "tag:yaml.org,2002:int"
	FloatTag     = "tag:yaml.org,2002:float"
	TimestampTag = "tag:yaml.org,2002:timestamp"
	SeqTag       = "tag:yaml.org,2002:seq"
	MapTag       = "tag:yaml.org,2002:map"
	BinaryTag    = "tag:yaml.org,2002:binary"
	MergeTag     = "tag:yaml.org,2002:merge"
	OMapTag      = "tag:yaml.org,2002:omap"
	PairsTag     = "tag:yaml.org,2002:pairs"
	SetTag       = "tag:yaml.org,2002:set"

	// DefaultTagPrefix is the URI prefix the `!!` handle expands to.
	DefaultTagPrefix = "tag:yaml.org,2002:"
)

// lineStarts returns the byte offsets at which each line of src begins.
// The slice is never empty; line 1 starts at offset 0.
func lineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// markAt translates a byte offset into a Mark using a precomputed line
// start table.
func markAt(starts []int, offset int) Mark {
	line := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
	// line is now the 1-indexed line number.
	return Mark{
		Index: offset,
		Line:  line,
		Col:   offset - starts[line-1] + 1,
	}
}
