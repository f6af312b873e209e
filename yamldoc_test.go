// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamldoc_test

import (
	"bytes"
	"testing"

	kitlog "github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamldoc/yamldoc"
)

func TestParseSimpleMap(t *testing.T) {
	v, err := yamldoc.Parse("a: 1\nb: two\n")
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, "two", m["b"])
}

func TestParseEmptyInput(t *testing.T) {
	v, err := yamldoc.Parse("")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestParseDocumentEmptyMarker(t *testing.T) {
	doc, err := yamldoc.ParseDocument("---")
	require.NoError(t, err)
	assert.Nil(t, doc.Contents)
	assert.Empty(t, doc.Errors)
}

func TestParseOnlyDirectivesFails(t *testing.T) {
	doc, err := yamldoc.ParseDocument("%YAML 1.2\n")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Errors)
	assert.Contains(t, doc.Errors[0].Message, "Directive without document")
}

func TestParseAllDocuments(t *testing.T) {
	docs, err := yamldoc.ParseAllDocuments("one\n---\ntwo\n")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	v0, err := docs[0].ToGo()
	require.NoError(t, err)
	assert.Equal(t, "one", v0)
}

func TestParseDocumentSurplus(t *testing.T) {
	doc, err := yamldoc.ParseDocument("one\n---\ntwo\n")
	require.NoError(t, err)
	require.NotEmpty(t, doc.Errors)
	assert.Contains(t, doc.Errors[len(doc.Errors)-1].Message, "multiple documents")
}

func TestStringifyValue(t *testing.T) {
	out, err := yamldoc.Stringify(map[string]any{"a": 1, "b": "two"})
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nb: two\n", out)
}

func TestRoundTripValue(t *testing.T) {
	inputs := []string{
		"a: 1\nb: [x, y]\nc:\n  d: true\n",
		"- 1\n- two\n- [3, 4]\n",
		"a: &x {k: v}\nb: *x\n",
		"text: |\n  line one\n  line two\n",
	}
	for _, src := range inputs {
		v, err := yamldoc.Parse(src)
		require.NoError(t, err, "input %q", src)
		out, err := yamldoc.Stringify(v)
		require.NoError(t, err)
		back, err := yamldoc.Parse(out)
		require.NoError(t, err, "output %q", out)
		assert.Equal(t, v, back, "round trip of %q via %q", src, out)
	}
}

func TestHostRoundTrip(t *testing.T) {
	values := []any{
		map[string]any{"a": int64(1), "b": []any{"x", "y"}},
		[]any{int64(1), "two", true, nil},
		map[string]any{"nested": map[string]any{"deep": []any{int64(1)}}},
	}
	for _, v := range values {
		out, err := yamldoc.Stringify(v)
		require.NoError(t, err)
		back, err := yamldoc.Parse(out)
		require.NoError(t, err)
		assert.Equal(t, v, back, "via %q", out)
	}
}

//-----------------------------------------------------------------------------
// Error scenarios
//-----------------------------------------------------------------------------

func TestTabIndentedMap(t *testing.T) {
	doc, err := yamldoc.ParseDocument("a:\n\t1\nb:\n\t2\n")
	require.NoError(t, err)
	require.Len(t, doc.Errors, 4)
	for _, e := range doc.Errors {
		assert.Equal(t, yamldoc.SemanticErrorName, e.Name)
	}
	_, err = yamldoc.Stringify(doc)
	assert.Error(t, err, "stringification must be refused")
}

func TestTrailingBareKey(t *testing.T) {
	doc, err := yamldoc.ParseDocument("abc: 123\ndef")
	require.NoError(t, err)
	require.Len(t, doc.Errors, 1)
	e := doc.Errors[0]
	assert.Equal(t, yamldoc.SemanticErrorName, e.Name)
	require.NotNil(t, e.LinePos)
	assert.Equal(t, 2, e.LinePos.Start.Line)
	assert.Equal(t, 1, e.LinePos.Start.Col)
	assert.Equal(t, 4, e.LinePos.End.Col)
}

func TestFlowMapEmptyItem(t *testing.T) {
	doc, err := yamldoc.ParseDocument("{ , }")
	require.NoError(t, err)
	require.Len(t, doc.Errors, 1)
	e := doc.Errors[0]
	assert.Equal(t, yamldoc.SyntaxErrorName, e.Name)
	assert.Equal(t, "FLOW_MAP", e.NodeType.String())
	require.NotNil(t, e.LinePos)
	assert.Equal(t, 3, e.LinePos.Start.Col)
	assert.Equal(t, 4, e.LinePos.End.Col)
}

func TestUnterminatedFlowSeq(t *testing.T) {
	doc, err := yamldoc.ParseDocument("[ foo, bar,")
	require.NoError(t, err)
	require.Len(t, doc.Errors, 1)
	e := doc.Errors[0]
	assert.Equal(t, yamldoc.SemanticErrorName, e.Name)
	require.NotNil(t, e.LinePos)
	assert.Equal(t, 1, e.LinePos.Start.Line)
	assert.Equal(t, 12, e.LinePos.Start.Col)
	assert.Equal(t, 13, e.LinePos.End.Col)
}

func TestParseReturnsFirstError(t *testing.T) {
	_, err := yamldoc.Parse("abc: 123\ndef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Implicit map keys need to be followed by map values")
}

//-----------------------------------------------------------------------------
// Warnings and the log sink
//-----------------------------------------------------------------------------

func TestUnknownTagFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := kitlog.NewLogfmtLogger(&buf)

	v, err := yamldoc.Parse("!foo bar", yamldoc.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, "bar", v)
	assert.Contains(t, buf.String(), "tag !foo is unavailable, falling back to tag:yaml.org,2002:str")
}

func TestUnknownTagSilencedByLogLevel(t *testing.T) {
	for _, lvl := range []yamldoc.LogLevel{yamldoc.LogError, yamldoc.LogSilent} {
		var buf bytes.Buffer
		logger := kitlog.NewLogfmtLogger(&buf)
		v, err := yamldoc.Parse("!foo bar",
			yamldoc.WithLogger(logger), yamldoc.WithLogLevel(lvl))
		require.NoError(t, err)
		assert.Equal(t, "bar", v)
		assert.Empty(t, buf.String(), "level %s must not emit warnings", lvl)
	}
}

//-----------------------------------------------------------------------------
// Aliases
//-----------------------------------------------------------------------------

func TestAnchorExpansionWithinLimit(t *testing.T) {
	v, err := yamldoc.Parse("a: &x [1, 2]\nb: *x\nc: *x\n", yamldoc.WithMaxAliasCount(2))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, m["a"], m["b"])
	assert.Equal(t, m["a"], m["c"])
}

func TestAliasDoublingGuard(t *testing.T) {
	src := "a: &a [1, 1]\nb: &b [*a, *a]\nc: &c [*b, *b]\nd: &d [*c, *c]\ne: *d\n"
	_, err := yamldoc.Parse(src, yamldoc.WithMaxAliasCount(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Excessive alias count")
}

func TestMaxAliasCountZero(t *testing.T) {
	_, err := yamldoc.Parse("a: &x 1\nb: *x\n", yamldoc.WithMaxAliasCount(0))
	assert.Error(t, err)
}

//-----------------------------------------------------------------------------
// Reviver / replacer
//-----------------------------------------------------------------------------

func TestParseWithReviver(t *testing.T) {
	v, err := yamldoc.ParseWithReviver("a: 1\nb: 2\n", func(key string, value any) any {
		if n, ok := value.(int64); ok {
			return n + 100
		}
		return value
	})
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, int64(101), m["a"])
	assert.Equal(t, int64(102), m["b"])
}

func TestStringifyWithReplacer(t *testing.T) {
	v := map[string]any{"keep": "yes", "secret": "hide me"}
	out, err := yamldoc.StringifyWithReplacer(v, func(key string, value any) (any, bool) {
		if key == "secret" {
			return nil, false
		}
		return value, true
	})
	require.NoError(t, err)
	assert.Contains(t, out, "keep:")
	assert.NotContains(t, out, "secret")
}

//-----------------------------------------------------------------------------
// Node-level API
//-----------------------------------------------------------------------------

func TestCreateNodeAndStringify(t *testing.T) {
	n, err := yamldoc.CreateNode(map[string]any{"x": 1}, true, "")
	require.NoError(t, err)
	out, err := yamldoc.Stringify(n)
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", out)
}

func TestVisitCountsNodes(t *testing.T) {
	doc, err := yamldoc.ParseDocument("a: [1, 2]\nb: x\n")
	require.NoError(t, err)
	require.Empty(t, doc.Errors)
	count := 0
	yamldoc.Visit(doc.Contents, func(any, yamldoc.Node, []yamldoc.Node) yamldoc.VisitAction {
		count++
		return yamldoc.VisitContinue()
	})
	// map, two keys, seq, two items, one scalar value.
	assert.Equal(t, 7, count)
}

func TestDocumentSetSchema(t *testing.T) {
	doc, err := yamldoc.NewDocument()
	require.NoError(t, err)
	require.NoError(t, doc.SetSchema("failsafe"))
	assert.Equal(t, "failsafe", doc.Schema.Name)
	assert.Error(t, doc.SetSchema("bogus"))
}

func TestCreateAlias(t *testing.T) {
	doc, err := yamldoc.NewDocument()
	require.NoError(t, err)
	target := &yamldoc.Scalar{Value: "shared"}
	alias, err := doc.CreateAlias(target, "")
	require.NoError(t, err)
	assert.Equal(t, "a1", alias.Name)
	assert.Same(t, target, doc.Anchors.GetNode("a1").(*yamldoc.Scalar))

	doc.Contents = &yamldoc.YAMLSeq{Items: []yamldoc.Node{target, alias}}
	out, err := yamldoc.Stringify(doc)
	require.NoError(t, err)
	assert.Contains(t, out, "&a1 shared")
	assert.Contains(t, out, "*a1")
}

func TestKeepCstNodesRangeProjection(t *testing.T) {
	doc, err := yamldoc.ParseDocument("key: value\n", yamldoc.WithKeepCstNodes(true))
	require.NoError(t, err)
	m := doc.Contents.(*yamldoc.YAMLMap)
	val := m.Items[0].Value.(*yamldoc.Scalar)
	assert.Equal(t, 5, val.SrcRange.Start)
	assert.Equal(t, 10, val.SrcRange.End)
	require.NotNil(t, val.CST)
	assert.Equal(t, "value", val.CST.Raw)
}

func TestSchemaOption(t *testing.T) {
	v, err := yamldoc.Parse("a: true\n", yamldoc.WithSchema("failsafe"))
	require.NoError(t, err)
	assert.Equal(t, "true", v.(map[string]any)["a"])

	_, err = yamldoc.Parse("a: 1\n", yamldoc.WithSchema("bogus"))
	assert.Error(t, err)
}

func TestVersionOption(t *testing.T) {
	v, err := yamldoc.Parse("a: yes\n", yamldoc.WithVersion("1.1"))
	require.NoError(t, err)
	assert.Equal(t, true, v.(map[string]any)["a"])

	v, err = yamldoc.Parse("a: yes\n")
	require.NoError(t, err)
	assert.Equal(t, "yes", v.(map[string]any)["a"])
}

func TestStringsThatLookLikeOtherTypesSurvive(t *testing.T) {
	in := map[string]any{"a": "true", "b": "123", "c": "null", "d": "1.5"}
	out, err := yamldoc.Stringify(in)
	require.NoError(t, err)
	back, err := yamldoc.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}
