// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamldoc

import "github.com/yamldoc/yamldoc/internal/yamlcore"

//-----------------------------------------------------------------------------
// Node-related type aliases and constants
//-----------------------------------------------------------------------------

type (
	// Document owns one resolved YAML document.
	// See internal/yamlcore.Document.
	Document = yamlcore.Document
	// Node is a resolved YAML node.
	// See internal/yamlcore.Node.
	Node = yamlcore.Node
	// Scalar is a resolved scalar value.
	Scalar = yamlcore.Scalar
	// Pair is one key/value entry of a mapping.
	Pair = yamlcore.Pair
	// YAMLMap is a mapping node; insertion order is significant.
	YAMLMap = yamlcore.YAMLMap
	// YAMLSeq is a sequence node.
	YAMLSeq = yamlcore.YAMLSeq
	// Alias references a previously anchored node.
	Alias = yamlcore.Alias
	// NodeType identifies the concrete variant of a CST or AST node.
	NodeType = yamlcore.NodeType
	// ScalarStyle identifies the presentation style of a scalar node.
	ScalarStyle = yamlcore.ScalarStyle
	// Schema is a named, ordered set of tag resolvers.
	Schema = yamlcore.Schema
	// TagResolver declares how one tag URI is handled.
	TagResolver = yamlcore.TagResolver
	// TagPrefix maps a %TAG handle to its URI prefix.
	TagPrefix = yamlcore.TagPrefix
)

// CST types for callers that work below the document model.
type (
	// CSTStream is an ordered list of CST documents over one source.
	CSTStream = yamlcore.CSTStream
	// CSTDocument is one document of a CST stream.
	CSTDocument = yamlcore.CSTDocument
	// CSTNode is a concrete-syntax node.
	CSTNode = yamlcore.CSTNode
	// CSTItem is one entry of a CST collection.
	CSTItem = yamlcore.CSTItem
	// Range is a half-open byte span into the source.
	Range = yamlcore.Range
	// Mark is a position in the source stream.
	Mark = yamlcore.Mark
)

// Diagnostics.
type (
	// Error is a diagnostic bound to a span of the source.
	Error = yamlcore.Error
	// Errors is a list of diagnostics implementing error.
	Errors = yamlcore.Errors
	// ErrorName partitions diagnostics by kind.
	ErrorName = yamlcore.ErrorName
	// LinePos is a (line, column) pair.
	LinePos = yamlcore.LinePos
	// LineSpan is the line/column projection of a Range.
	LineSpan = yamlcore.LineSpan
)

// Visitor types.
type (
	// VisitorFunc is called for every node reached by Visit.
	VisitorFunc = yamlcore.VisitorFunc
	// VisitorTable dispatches by node kind.
	VisitorTable = yamlcore.VisitorTable
	// VisitAction steers traversal after a callback.
	VisitAction = yamlcore.VisitAction
)

// Host-value capability interfaces consulted by CreateNode.
type (
	// NodeConverter lets host types build their own node representation.
	NodeConverter = yamlcore.NodeConverter
	// Sequencer presents a host value as an ordered sequence.
	Sequencer = yamlcore.Sequencer
	// OrderedMapper presents a host value as an ordered mapping.
	OrderedMapper = yamlcore.OrderedMapper
	// MapItem is one entry yielded by an OrderedMapper.
	MapItem = yamlcore.MapItem
)

// Re-export NodeType constants.
const (
	DocumentType     = yamlcore.DocumentType
	DirectiveType    = yamlcore.DirectiveType
	BlockMapType     = yamlcore.BlockMapType
	BlockSeqType     = yamlcore.BlockSeqType
	FlowMapType      = yamlcore.FlowMapType
	FlowSeqType      = yamlcore.FlowSeqType
	PlainType        = yamlcore.PlainType
	QuoteDoubleType  = yamlcore.QuoteDoubleType
	QuoteSingleType  = yamlcore.QuoteSingleType
	BlockLiteralType = yamlcore.BlockLiteralType
	BlockFoldedType  = yamlcore.BlockFoldedType
	CommentType      = yamlcore.CommentType
	ScalarType       = yamlcore.ScalarType
	MapType          = yamlcore.MapType
	SeqType          = yamlcore.SeqType
	PairType         = yamlcore.PairType
	AliasType        = yamlcore.AliasType
)

// Re-export ScalarStyle constants.
const (
	Plain        = yamlcore.Plain
	QuoteSingle  = yamlcore.QuoteSingle
	QuoteDouble  = yamlcore.QuoteDouble
	BlockLiteral = yamlcore.BlockLiteral
	BlockFolded  = yamlcore.BlockFolded
)

// Re-export diagnostic names.
const (
	SyntaxErrorName    = yamlcore.SyntaxErrorName
	SemanticErrorName  = yamlcore.SemanticErrorName
	ReferenceErrorName = yamlcore.ReferenceErrorName
	WarningName        = yamlcore.WarningName
)

// Re-export the standard tag URIs.
const (
	NullTag      = yamlcore.NullTag
	BoolTag      = yamlcore.BoolTag
	StrTag       = yamlcore.StrTag
	IntTag       = yamlcore.IntTag
	FloatTag     = yamlcore.FloatTag
	TimestampTag = yamlcore.TimestampTag
	SeqTag       = yamlcore.SeqTag
	MapTag       = yamlcore.MapTag
	BinaryTag    = yamlcore.BinaryTag
	MergeTag     = yamlcore.MergeTag
	OMapTag      = yamlcore.OMapTag
	PairsTag     = yamlcore.PairsTag
	SetTag       = yamlcore.SetTag
)

// Visitor action constructors.
var (
	VisitContinue = yamlcore.VisitContinue
	VisitSkip     = yamlcore.VisitSkip
	VisitBreak    = yamlcore.VisitBreak
	VisitRemove   = yamlcore.VisitRemove
	VisitReplace  = yamlcore.VisitReplace
	VisitJump     = yamlcore.VisitJump
)

// NewDocument creates an empty document bound to the given options.
func NewDocument(opts ...Option) (*Document, error) {
	o, err := yamlcore.BuildOptions(opts...)
	if err != nil {
		return nil, err
	}
	return yamlcore.NewDocument(o)
}
