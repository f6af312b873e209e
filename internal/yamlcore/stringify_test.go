// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringifyFirst(t *testing.T, src string, opts ...Option) string {
	t.Helper()
	doc := resolveFirst(t, src, opts...)
	require.Empty(t, doc.Errors)
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	return out
}

// reparse stringifies a parsed document and parses the output again,
// asserting the converted values survive the round trip.
func reparse(t *testing.T, src string, opts ...Option) {
	t.Helper()
	doc := resolveFirst(t, src, opts...)
	require.Empty(t, doc.Errors, "input did not parse cleanly")
	want, err := doc.ToGo()
	require.NoError(t, err)

	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	doc2 := resolveFirst(t, out, opts...)
	require.Empty(t, doc2.Errors, "output did not parse cleanly:\n%s", out)
	got, err := doc2.ToGo()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip changed the value (-want +got):\n%s\noutput:\n%s", diff, out)
	}
}

func TestStringifyScalars(t *testing.T) {
	assert.Equal(t, "a: 1\nb: two\n", stringifyFirst(t, "a: 1\nb: two\n"))
}

func TestStringifyEndsWithNewline(t *testing.T) {
	out := stringifyFirst(t, "x")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestStringifyRefusedOnErrors(t *testing.T) {
	doc := resolveFirst(t, "a:\n\t1\nb:\n\t2\n")
	require.NotEmpty(t, doc.Errors)
	_, err := StringifyDocument(doc)
	assert.Error(t, err)
}

func TestStringifyQuotesAmbiguousStrings(t *testing.T) {
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	o := *doc.Options
	n, err := CreateNode(map[string]any{"a": "true", "b": "123", "c": "plain"}, true, "", &o)
	require.NoError(t, err)
	doc.Contents = n
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "a: 'true'\n")
	assert.Contains(t, out, "b: '123'\n")
	assert.Contains(t, out, "c: plain\n")
}

func TestStringifyAnchorsAndAliases(t *testing.T) {
	out := stringifyFirst(t, "a: &x [1, 2]\nb: *x\nc: *x\n")
	assert.Contains(t, out, "&x")
	assert.Equal(t, 2, strings.Count(out, "*x"))
	reparse(t, "a: &x [1, 2]\nb: *x\nc: *x\n")
}

func TestStringifySharedNodeGetsAnchor(t *testing.T) {
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	shared := &Scalar{Value: "common"}
	seq := &YAMLSeq{Items: []Node{shared, shared}}
	doc.Contents = seq
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "&a1")
	assert.Contains(t, out, "*a1")
}

func TestStringifyBlockLiteral(t *testing.T) {
	out := stringifyFirst(t, "a: |\n  l1\n  l2\n")
	assert.Contains(t, out, "a: |\n")
	reparse(t, "a: |\n  l1\n  l2\n")
}

func TestStringifyBlockLiteralStrip(t *testing.T) {
	reparse(t, "a: |-\n  no trailing break\n")
}

func TestStringifyFolded(t *testing.T) {
	reparse(t, "a: >\n  some folded text\n  on two lines\n")
}

func TestStringifyFlowStylePreserved(t *testing.T) {
	out := stringifyFirst(t, "a: [1, 2]\nb: {x: 1}\n")
	assert.Contains(t, out, "a: [ 1, 2 ]")
	assert.Contains(t, out, "b: { x: 1 }")
	reparse(t, "a: [1, 2]\nb: {x: 1}\n")
}

func TestStringifyNestedBlock(t *testing.T) {
	src := "top:\n  inner:\n    leaf: 1\n  other: 2\n"
	assert.Equal(t, src, stringifyFirst(t, src))
}

func TestStringifySeqIndentOption(t *testing.T) {
	src := "key:\n  - 1\n  - 2\n"
	assert.Equal(t, src, stringifyFirst(t, src))

	out := stringifyFirst(t, src, WithIndentSeq(false))
	assert.Equal(t, "key:\n- 1\n- 2\n", out)
}

func TestStringifyDirectives(t *testing.T) {
	out := stringifyFirst(t, "%YAML 1.1\n---\na: 1\n")
	assert.True(t, strings.HasPrefix(out, "%YAML 1.1\n---"), "got:\n%s", out)
	reparse(t, "%YAML 1.1\n---\na: 1\n")
}

func TestStringifyFoldsLongLines(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 30))
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	n, err := CreateNode(map[string]any{"k": long}, true, "", doc.Options)
	require.NoError(t, err)
	doc.Contents = n
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	// The first physical line carries the "k: " prefix on top of the
	// fold width.
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 83, "line too long: %q", line)
	}

	doc2 := resolveFirst(t, out)
	require.Empty(t, doc2.Errors)
	v, err := doc2.ToGo()
	require.NoError(t, err)
	assert.Equal(t, long, v.(map[string]any)["k"])
}

func TestStringifyLineWidthZeroDisablesFolding(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 30))
	o := DefaultOptions
	o.Scalar.Str.Fold.LineWidth = 0
	doc, err := NewDocument(&o)
	require.NoError(t, err)
	n, err := CreateNode(map[string]any{"k": long}, true, "", &o)
	require.NoError(t, err)
	doc.Contents = n
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "expected a single unfolded line:\n%s", out)
}

func TestStringifySimpleKeysRejectsCollectionKeys(t *testing.T) {
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	doc.Options.SimpleKeys = true
	key := &YAMLSeq{Items: []Node{&Scalar{Value: "k"}}, Flow: true}
	doc.Contents = &YAMLMap{Items: []*Pair{{Key: key, Value: &Scalar{Value: int64(1)}}}}
	_, err = StringifyDocument(doc)
	assert.Error(t, err)
}

func TestStringifyBinary(t *testing.T) {
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	n, err := CreateNode(map[string]any{"data": []byte("hello world")}, true, "", doc.Options)
	require.NoError(t, err)
	doc.Contents = n
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "!!binary")
	assert.Contains(t, out, "aGVsbG8gd29ybGQ=")
}

func TestStringifyEmptyCollections(t *testing.T) {
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	doc.Contents = &YAMLMap{Items: []*Pair{
		{Key: &Scalar{Value: "m"}, Value: &YAMLMap{}},
		{Key: &Scalar{Value: "s"}, Value: &YAMLSeq{}},
	}}
	out, err := StringifyDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "m: {}\ns: []\n", out)
}

func TestFoldString(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("alpha beta ", 12))
	folded := foldString(text, "", 40, 20)
	for _, line := range strings.Split(folded, "\n") {
		assert.LessOrEqual(t, len(line), 41)
	}
	assert.Equal(t, text, strings.ReplaceAll(folded, "\n", " "))
}

func TestFoldStringDisabled(t *testing.T) {
	text := strings.Repeat("x ", 100)
	assert.Equal(t, text, foldString(text, "", 0, 20))
}

func TestFoldStringNeverInsideWord(t *testing.T) {
	word := strings.Repeat("a", 120)
	assert.Equal(t, word, foldString(word, "", 80, 20))
}
