// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGoScalarsAndCollections(t *testing.T) {
	doc := resolveFirst(t, "a: 1\nb:\n  - x\n  - 2\nc:\n  d: true\n")
	require.Empty(t, doc.Errors)
	v, err := doc.ToGo()
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, []any{"x", int64(2)}, m["b"])
	assert.Equal(t, map[string]any{"d": true}, m["c"])
}

func TestToGoEmptyDocument(t *testing.T) {
	doc := resolveFirst(t, "")
	v, err := doc.ToGo()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestToGoAliases(t *testing.T) {
	doc := resolveFirst(t, "a: &x [1, 2]\nb: *x\n")
	v, err := doc.ToGo()
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, m["a"], m["b"])
}

func TestToGoMapAsMap(t *testing.T) {
	doc := resolveFirst(t, "1: one\ntrue: yes\n", WithMapAsMap(true))
	v, err := doc.ToGo()
	require.NoError(t, err)
	m := v.(map[any]any)
	assert.Equal(t, "one", m[int64(1)])
	assert.Equal(t, "yes", m[true])
}

func TestToGoStringKeysByDefault(t *testing.T) {
	doc := resolveFirst(t, "1: one\n")
	v, err := doc.ToGo()
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "one", m["1"])
}

func TestToGoRefusesErrors(t *testing.T) {
	doc := resolveFirst(t, "abc: 123\ndef")
	_, err := doc.ToGo()
	assert.Error(t, err)
}

func TestToGoRejectsReferenceCycles(t *testing.T) {
	// Host mutation builds the only representable cycles.
	m := &YAMLMap{}
	a := &Alias{Name: "self", Source: m}
	m.Items = []*Pair{{Key: &Scalar{Value: "self"}, Value: a}}
	doc, err := NewDocument(nil)
	require.NoError(t, err)
	doc.Contents = m
	_, err = doc.ToGo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference cycle")
}

func TestApplyReviver(t *testing.T) {
	v := map[string]any{"a": int64(1), "b": []any{int64(2), int64(3)}}
	out := ApplyReviver(func(key string, value any) any {
		if n, ok := value.(int64); ok {
			return n * 10
		}
		return value
	}, v)
	m := out.(map[string]any)
	assert.Equal(t, int64(10), m["a"])
	assert.Equal(t, []any{int64(20), int64(30)}, m["b"])
}

func TestApplyReviverDropsNil(t *testing.T) {
	v := map[string]any{"a": int64(1), "b": "drop"}
	out := ApplyReviver(func(key string, value any) any {
		if value == "drop" {
			return nil
		}
		return value
	}, v)
	m := out.(map[string]any)
	_, ok := m["b"]
	assert.False(t, ok)
	assert.Equal(t, int64(1), m["a"])
}
