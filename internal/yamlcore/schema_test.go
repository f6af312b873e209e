// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchema(t *testing.T, name, version string) *Schema {
	t.Helper()
	s, err := NewSchema(name, version, nil)
	require.NoError(t, err)
	return s
}

func resolveRaw(t *testing.T, s *Schema, raw string) (string, any) {
	t.Helper()
	o := DefaultOptions
	tag, v, err := s.ResolveScalar(raw, &o)
	require.NoError(t, err)
	return tag, v
}

func TestCoreSchemaImplicitResolution(t *testing.T) {
	s := mustSchema(t, "core", "1.2")

	tag, v := resolveRaw(t, s, "true")
	assert.Equal(t, BoolTag, tag)
	assert.Equal(t, true, v)

	tag, v = resolveRaw(t, s, "null")
	assert.Equal(t, NullTag, tag)
	assert.Nil(t, v)

	tag, v = resolveRaw(t, s, "~")
	assert.Equal(t, NullTag, tag)
	assert.Nil(t, v)

	tag, v = resolveRaw(t, s, "42")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(42), v)

	tag, v = resolveRaw(t, s, "0x1A")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(26), v)

	tag, v = resolveRaw(t, s, "0o17")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(15), v)

	tag, v = resolveRaw(t, s, "1.5")
	assert.Equal(t, FloatTag, tag)
	assert.Equal(t, 1.5, v)

	tag, v = resolveRaw(t, s, ".inf")
	assert.Equal(t, FloatTag, tag)
	assert.True(t, math.IsInf(v.(float64), 1))

	tag, v = resolveRaw(t, s, "-.inf")
	assert.Equal(t, FloatTag, tag)
	assert.True(t, math.IsInf(v.(float64), -1))

	tag, v = resolveRaw(t, s, ".nan")
	assert.Equal(t, FloatTag, tag)
	assert.True(t, math.IsNaN(v.(float64)))

	// YAML 1.2 core does not treat yes/no as booleans.
	tag, v = resolveRaw(t, s, "yes")
	assert.Equal(t, StrTag, tag)
	assert.Equal(t, "yes", v)
}

func TestCoreSchemaUnder11(t *testing.T) {
	s := mustSchema(t, "core", "1.1")
	tag, v := resolveRaw(t, s, "yes")
	assert.Equal(t, BoolTag, tag)
	assert.Equal(t, true, v)
	tag, v = resolveRaw(t, s, "off")
	assert.Equal(t, BoolTag, tag)
	assert.Equal(t, false, v)
	assert.True(t, s.MergeKeys)
}

func TestJSONSchemaIsStrict(t *testing.T) {
	s := mustSchema(t, "json", "1.2")

	tag, _ := resolveRaw(t, s, "True")
	assert.Equal(t, StrTag, tag)

	tag, _ = resolveRaw(t, s, "0x1A")
	assert.Equal(t, StrTag, tag)

	tag, v := resolveRaw(t, s, "-12")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(-12), v)

	tag, _ = resolveRaw(t, s, "012")
	assert.Equal(t, StrTag, tag)
}

func TestFailsafeSchema(t *testing.T) {
	s := mustSchema(t, "failsafe", "1.2")
	tag, v := resolveRaw(t, s, "true")
	assert.Equal(t, StrTag, tag)
	assert.Equal(t, "true", v)
}

func TestYAML11Schema(t *testing.T) {
	s := mustSchema(t, "yaml-1.1", "1.1")

	tag, v := resolveRaw(t, s, "0b101")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(5), v)

	tag, v = resolveRaw(t, s, "010")
	assert.Equal(t, IntTag, tag)
	assert.Equal(t, int64(8), v)

	tag, v = resolveRaw(t, s, "2001-12-14")
	assert.Equal(t, TimestampTag, tag)
	require.NotNil(t, v)

	tag, _ = resolveRaw(t, s, "<<")
	assert.Equal(t, MergeTag, tag)
	assert.True(t, s.MergeKeys)
}

func TestIntAsBigInt(t *testing.T) {
	s := mustSchema(t, "core", "1.2")
	o := DefaultOptions
	o.Scalar.Int.AsBigInt = true
	tag, v, err := s.ResolveScalar("42", &o)
	require.NoError(t, err)
	assert.Equal(t, IntTag, tag)
	bi, ok := v.(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "42", bi.String())
}

func TestHugeIntDegradesToBig(t *testing.T) {
	s := mustSchema(t, "core", "1.2")
	o := DefaultOptions
	_, v, err := s.ResolveScalar("123456789012345678901234567890", &o)
	require.NoError(t, err)
	bi, ok := v.(*big.Int)
	require.True(t, ok)
	assert.Equal(t, "123456789012345678901234567890", bi.String())
}

func TestUnknownSchemaName(t *testing.T) {
	_, err := NewSchema("nope", "1.2", nil)
	assert.Error(t, err)
}

func TestBinaryResolver(t *testing.T) {
	res := binaryResolver()
	o := DefaultOptions
	v, err := res.Resolve("aGVsbG8=", &o)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), v)

	text, ok := res.Stringify([]byte("hello"), &o)
	require.True(t, ok)
	assert.Equal(t, "aGVsbG8=", text)
}
