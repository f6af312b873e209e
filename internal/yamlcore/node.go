// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Abstract syntax tree node model. Nodes are a sealed union of Scalar,
// YAMLMap, YAMLSeq and Alias; mappings hold Pair items. Nodes are owned by
// their enclosing collection; anchor names live in the document's anchor
// table, not on the nodes themselves.

package yamlcore

// Node is a resolved YAML node.
type Node interface {
	NodeType() NodeType
	Base() *BaseNode
}

// BaseNode carries the fields every AST node shares.
type BaseNode struct {
	// Tag is the resolved full tag URI.
	Tag string
	// CommentBefore holds full-line comments preceding the node.
	CommentBefore string
	// Comment holds the trailing comment on the node's last line.
	Comment string
	// SrcRange is the node's span in the parsed source, when it came
	// from one.
	SrcRange Range
	// CST points back at the concrete syntax, when requested.
	CST *CSTNode
}

func (b *BaseNode) Base() *BaseNode { return b }

// Scalar is a resolved scalar value.
type Scalar struct {
	BaseNode
	Value any
	Style ScalarStyle
	// Format preserves a non-canonical source notation such as "HEX".
	Format string
}

func (s *Scalar) NodeType() NodeType { return ScalarType }

// Pair is one key/value entry of a mapping. Either side may be nil for an
// empty key or value. Merge marks a resolved YAML 1.1 '<<' entry.
type Pair struct {
	Key   Node
	Value Node
	Merge bool
}

// YAMLMap is a mapping; insertion order is significant and duplicate keys
// are preserved.
type YAMLMap struct {
	BaseNode
	Items []*Pair
	Flow  bool
}

func (m *YAMLMap) NodeType() NodeType { return MapType }

// Get returns the value of the first pair whose key resolves to the given
// scalar value, or nil.
func (m *YAMLMap) Get(key any) Node {
	for _, item := range m.Items {
		if s, ok := item.Key.(*Scalar); ok && scalarValueEqual(s.Value, key) {
			return item.Value
		}
	}
	return nil
}

// YAMLSeq is a sequence of nodes.
type YAMLSeq struct {
	BaseNode
	Items []Node
	Flow  bool
}

func (s *YAMLSeq) NodeType() NodeType { return SeqType }

// Alias is a reference to a previously anchored node. Source is filled at
// resolve time through the document's anchor table.
type Alias struct {
	BaseNode
	Name   string
	Source Node
}

func (a *Alias) NodeType() NodeType { return AliasType }

// ScalarValue extracts the value of a scalar node; ok is false for
// non-scalars and nil nodes.
func ScalarValue(n Node) (any, bool) {
	if s, ok := n.(*Scalar); ok {
		return s.Value, true
	}
	return nil, false
}

// scalarValueEqual compares scalar values without panicking on
// non-comparable payloads such as []byte.
func scalarValueEqual(a, b any) bool {
	if ab, ok := a.([]byte); ok {
		bb, ok := b.([]byte)
		if !ok || len(ab) != len(bb) {
			return false
		}
		for i := range ab {
			if ab[i] != bb[i] {
				return false
			}
		}
		return true
	}
	if _, ok := b.([]byte); ok {
		return false
	}
	return a == b
}

// nodeEqual compares two nodes by resolved value; collections compare
// structurally. Aliases compare by their sources.
func nodeEqual(a, b Node) bool {
	for {
		al, ok := a.(*Alias)
		if !ok {
			break
		}
		a = al.Source
	}
	for {
		bl, ok := b.(*Alias)
		if !ok {
			break
		}
		b = bl.Source
	}
	if a == nil || b == nil {
		return a == b
	}
	switch av := a.(type) {
	case *Scalar:
		bv, ok := b.(*Scalar)
		return ok && scalarValueEqual(av.Value, bv.Value)
	case *YAMLSeq:
		bv, ok := b.(*YAMLSeq)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !nodeEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *YAMLMap:
		bv, ok := b.(*YAMLMap)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !nodeEqual(av.Items[i].Key, bv.Items[i].Key) ||
				!nodeEqual(av.Items[i].Value, bv.Items[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
