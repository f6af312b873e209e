// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstValue(t *testing.T, src string) *CSTNode {
	t.Helper()
	stream := ParseCST(src)
	require.Len(t, stream.Docs, 1)
	require.NotNil(t, stream.Docs[0].Contents)
	return stream.Docs[0].Contents
}

func TestPlainMultiline(t *testing.T) {
	n := firstValue(t, "a: one\n  two\n").Items[0].Value
	assert.Equal(t, PlainType, n.Type)
	assert.Equal(t, "one two", n.Value)
}

func TestPlainMultilineBlankLine(t *testing.T) {
	n := firstValue(t, "a: one\n\n  two\n").Items[0].Value
	assert.Equal(t, "one\ntwo", n.Value)
}

func TestDoubleQuotedEscapes(t *testing.T) {
	cases := []struct{ src, want string }{
		{`"a\tb"`, "a\tb"},
		{`"a\nb"`, "a\nb"},
		{`"\x41"`, "A"},
		{`"A"`, "A"},
		{`"\U00000041"`, "A"},
		{`"\\"`, `\`},
		{`"\""`, `"`},
		{`"\e"`, "\x1b"},
		{`"\N"`, "\u0085"},
	}
	for _, tc := range cases {
		n := firstValue(t, tc.src)
		assert.Equal(t, QuoteDoubleType, n.Type)
		assert.Equal(t, tc.want, n.Value, "source %s", tc.src)
	}
}

func TestDoubleQuotedLineContinuation(t *testing.T) {
	n := firstValue(t, "\"fold\\\n  ed\"")
	assert.Equal(t, "folded", n.Value)
}

func TestDoubleQuotedFolding(t *testing.T) {
	n := firstValue(t, "\"one\n two\"")
	assert.Equal(t, "one two", n.Value)
}

func TestDoubleQuotedBadEscape(t *testing.T) {
	stream := ParseCST(`"a\qb"`)
	doc := stream.Docs[0]
	require.NotEmpty(t, doc.Errors)
	assert.Equal(t, SyntaxErrorName, doc.Errors[0].Name)
	assert.Contains(t, doc.Errors[0].Message, "Invalid escape sequence")
}

func TestDoubleQuotedMissingClose(t *testing.T) {
	stream := ParseCST(`"abc`)
	doc := stream.Docs[0]
	require.NotEmpty(t, doc.Errors)
	assert.Contains(t, doc.Errors[0].Message, "Missing closing")
}

func TestSingleQuoted(t *testing.T) {
	n := firstValue(t, "'it''s'")
	assert.Equal(t, QuoteSingleType, n.Type)
	assert.Equal(t, "it's", n.Value)
}

func TestBlockLiteralClip(t *testing.T) {
	n := firstValue(t, "a: |\n  l1\n  l2\n").Items[0].Value
	require.Equal(t, BlockLiteralType, n.Type)
	assert.Equal(t, "l1\nl2\n", n.Value)
}

func TestBlockLiteralStrip(t *testing.T) {
	n := firstValue(t, "|-\n  x\n")
	assert.Equal(t, "x", n.Value)
}

func TestBlockLiteralKeep(t *testing.T) {
	n := firstValue(t, "|+\n  x\n\n\n")
	assert.Equal(t, "x\n\n\n", n.Value)
}

func TestBlockLiteralExplicitIndent(t *testing.T) {
	n := firstValue(t, "|2\n   indented\n")
	assert.Equal(t, " indented\n", n.Value)
}

func TestBlockLiteralInnerIndent(t *testing.T) {
	n := firstValue(t, "|\n  a\n    b\n  c\n")
	assert.Equal(t, "a\n  b\nc\n", n.Value)
}

func TestBlockFolded(t *testing.T) {
	n := firstValue(t, ">\n  one\n  two\n")
	require.Equal(t, BlockFoldedType, n.Type)
	assert.Equal(t, "one two\n", n.Value)
}

func TestBlockFoldedBlankLine(t *testing.T) {
	n := firstValue(t, ">\n  one\n\n  two\n")
	assert.Equal(t, "one\ntwo\n", n.Value)
}

func TestBlockFoldedMoreIndented(t *testing.T) {
	n := firstValue(t, ">\n  one\n   more\n  two\n")
	assert.Equal(t, "one\n more\ntwo\n", n.Value)
}

func TestBlockScalarChompingIndicatorHeader(t *testing.T) {
	n := firstValue(t, "|-\n  x\n")
	assert.Equal(t, byte('-'), n.Chomping)
	n = firstValue(t, "|+\n  x\n")
	assert.Equal(t, byte('+'), n.Chomping)
}
