// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

package yamlcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visitFixture(t *testing.T) Node {
	t.Helper()
	doc := resolveFirst(t, "a: 1\nb:\n  - 2\n  - 3\nc: x\n")
	require.Empty(t, doc.Errors)
	return doc.Contents
}

func TestVisitReachesEveryNodeOnce(t *testing.T) {
	root := visitFixture(t)
	seen := map[Node]int{}
	Visit(root, func(_ any, n Node, _ []Node) VisitAction {
		seen[n]++
		return VisitContinue()
	})
	// map + 3 keys + 3 values + 2 seq items = 9 nodes.
	assert.Len(t, seen, 9)
	for n, count := range seen {
		assert.Equal(t, 1, count, "node %v visited more than once", n)
	}
}

func TestVisitKeys(t *testing.T) {
	root := visitFixture(t)
	var keys []any
	Visit(root, func(key any, _ Node, _ []Node) VisitAction {
		keys = append(keys, key)
		return VisitContinue()
	})
	assert.Equal(t, nil, keys[0])
	assert.Contains(t, keys, "key")
	assert.Contains(t, keys, "value")
	assert.Contains(t, keys, 0)
	assert.Contains(t, keys, 1)
}

func TestVisitSkip(t *testing.T) {
	root := visitFixture(t)
	count := 0
	Visit(root, func(_ any, n Node, _ []Node) VisitAction {
		count++
		if _, ok := n.(*YAMLSeq); ok {
			return VisitSkip()
		}
		return VisitContinue()
	})
	// The two sequence items are not visited.
	assert.Equal(t, 7, count)
}

func TestVisitBreak(t *testing.T) {
	root := visitFixture(t)
	count := 0
	Visit(root, func(_ any, _ Node, _ []Node) VisitAction {
		count++
		if count == 3 {
			return VisitBreak()
		}
		return VisitContinue()
	})
	assert.Equal(t, 3, count)
}

func TestVisitRemoveSeqItem(t *testing.T) {
	root := visitFixture(t)
	Visit(root, func(_ any, n Node, _ []Node) VisitAction {
		if s, ok := n.(*Scalar); ok && s.Value == int64(2) {
			return VisitRemove()
		}
		return VisitContinue()
	})
	seq := root.(*YAMLMap).Items[1].Value.(*YAMLSeq)
	require.Len(t, seq.Items, 1)
	assert.Equal(t, int64(3), seq.Items[0].(*Scalar).Value)
}

func TestVisitRemovePair(t *testing.T) {
	root := visitFixture(t)
	Visit(root, func(key any, n Node, _ []Node) VisitAction {
		if key == "key" {
			if s, ok := n.(*Scalar); ok && s.Value == "a" {
				return VisitRemove()
			}
		}
		return VisitContinue()
	})
	m := root.(*YAMLMap)
	require.Len(t, m.Items, 2)
	assert.Equal(t, "b", m.Items[0].Key.(*Scalar).Value)
}

func TestVisitReplace(t *testing.T) {
	root := visitFixture(t)
	Visit(root, func(_ any, n Node, _ []Node) VisitAction {
		if s, ok := n.(*Scalar); ok && s.Value == "x" {
			return VisitReplace(&Scalar{Value: "y"})
		}
		return VisitContinue()
	})
	m := root.(*YAMLMap)
	assert.Equal(t, "y", m.Items[2].Value.(*Scalar).Value)
}

func TestVisitReplaceRoot(t *testing.T) {
	root := visitFixture(t)
	newRoot := Visit(root, func(key any, n Node, _ []Node) VisitAction {
		if _, ok := n.(*YAMLMap); ok && key == nil {
			return VisitReplace(&Scalar{Value: "replaced"})
		}
		return VisitContinue()
	})
	assert.Equal(t, "replaced", newRoot.(*Scalar).Value)
}

func TestVisitRemoveRoot(t *testing.T) {
	root := visitFixture(t)
	assert.Nil(t, Visit(root, func(key any, _ Node, _ []Node) VisitAction {
		if key == nil {
			return VisitRemove()
		}
		return VisitContinue()
	}))
}

func TestVisitAncestors(t *testing.T) {
	root := visitFixture(t)
	var depth int
	Visit(root, func(_ any, n Node, ancestors []Node) VisitAction {
		if s, ok := n.(*Scalar); ok && s.Value == int64(3) {
			depth = len(ancestors)
			assert.Same(t, root, ancestors[0])
		}
		return VisitContinue()
	})
	// map -> seq -> item.
	assert.Equal(t, 2, depth)
}

func TestVisitTableDispatch(t *testing.T) {
	root := visitFixture(t)
	scalars, seqs := 0, 0
	VisitTable(root, VisitorTable{
		Scalar: func(any, Node, []Node) VisitAction { scalars++; return VisitContinue() },
		Seq:    func(any, Node, []Node) VisitAction { seqs++; return VisitContinue() },
	})
	assert.Equal(t, 7, scalars)
	assert.Equal(t, 1, seqs)
}

func TestVisitJump(t *testing.T) {
	doc := resolveFirst(t, "- a\n- b\n- c\n- d\n")
	require.Empty(t, doc.Errors)
	var visited []string
	Visit(doc.Contents, func(_ any, n Node, _ []Node) VisitAction {
		if s, ok := n.(*Scalar); ok {
			visited = append(visited, s.Value.(string))
			if s.Value == "a" {
				return VisitJump(2)
			}
		}
		return VisitContinue()
	})
	assert.Equal(t, []string{"a", "c", "d"}, visited)
}
