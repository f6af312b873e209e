// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Depth-first AST visitor. The callback sees (key, node, ancestors) where
// key is the index inside a sequence, the marker "key" or "value" inside a
// mapping pair, or nil at the root. The returned action steers traversal.

package yamlcore

// visitKind enumerates the visitor control verbs.
type visitKind int8

const (
	visitContinue visitKind = iota
	visitSkip
	visitBreak
	visitRemove
	visitReplace
	visitJump
)

// VisitAction steers traversal after a callback. Use the package
// constructors; the zero value continues normally.
type VisitAction struct {
	kind  visitKind
	node  Node
	index int
}

// VisitContinue descends into the node's children.
func VisitContinue() VisitAction { return VisitAction{} }

// VisitSkip keeps the node but does not descend into it.
func VisitSkip() VisitAction { return VisitAction{kind: visitSkip} }

// VisitBreak aborts the whole traversal.
func VisitBreak() VisitAction { return VisitAction{kind: visitBreak} }

// VisitRemove deletes the node from its parent and continues at the same
// index.
func VisitRemove() VisitAction { return VisitAction{kind: visitRemove} }

// VisitReplace swaps the node for a new one, which is itself visited.
func VisitReplace(n Node) VisitAction { return VisitAction{kind: visitReplace, node: n} }

// VisitJump redirects the parent's iteration to the given index.
func VisitJump(index int) VisitAction { return VisitAction{kind: visitJump, index: index} }

// VisitorFunc is called for every node reached by Visit.
type VisitorFunc func(key any, n Node, ancestors []Node) VisitAction

// VisitorTable dispatches by node kind; nil entries fall back to Any.
type VisitorTable struct {
	Any    VisitorFunc
	Scalar VisitorFunc
	Map    VisitorFunc
	Seq    VisitorFunc
	Alias  VisitorFunc
}

func (t VisitorTable) fn(n Node) VisitorFunc {
	var f VisitorFunc
	switch n.(type) {
	case *Scalar:
		f = t.Scalar
	case *YAMLMap:
		f = t.Map
	case *YAMLSeq:
		f = t.Seq
	case *Alias:
		f = t.Alias
	}
	if f == nil {
		f = t.Any
	}
	return f
}

// Visit walks the tree rooted at n depth first and returns the (possibly
// replaced) root; a removed root comes back nil.
func Visit(n Node, fn VisitorFunc) Node {
	root, act := visitNode(nil, n, nil, fn)
	if act.kind == visitRemove {
		return nil
	}
	return root
}

// VisitTable walks with a per-kind dispatch table.
func VisitTable(n Node, table VisitorTable) Node {
	return Visit(n, func(key any, n Node, ancestors []Node) VisitAction {
		f := table.fn(n)
		if f == nil {
			return VisitContinue()
		}
		return f(key, n, ancestors)
	})
}

// visitNode runs the callback for one node and, on plain continuation,
// descends into its children. The action relevant to the node's parent
// (remove, jump, break) is passed back up.
func visitNode(key any, n Node, ancestors []Node, fn VisitorFunc) (Node, VisitAction) {
	if n == nil {
		return nil, VisitAction{}
	}
	act := fn(key, n, ancestors)
	switch act.kind {
	case visitBreak, visitRemove, visitJump:
		return n, act
	case visitSkip:
		return n, VisitAction{}
	case visitReplace:
		if act.node == nil {
			return n, VisitAction{kind: visitRemove}
		}
		return visitNode(key, act.node, ancestors, fn)
	}

	path := append(ancestors, n)
	switch v := n.(type) {
	case *YAMLSeq:
		for i := 0; i < len(v.Items); i++ {
			child, childAct := visitNode(i, v.Items[i], path, fn)
			v.Items[i] = child
			switch childAct.kind {
			case visitBreak:
				return n, childAct
			case visitRemove:
				v.Items = append(v.Items[:i], v.Items[i+1:]...)
				i--
			case visitJump:
				i = childAct.index - 1
			}
		}
	case *YAMLMap:
		for i := 0; i < len(v.Items); i++ {
			pair := v.Items[i]
			child, childAct := visitNode("key", pair.Key, path, fn)
			pair.Key = child
			switch childAct.kind {
			case visitBreak:
				return n, childAct
			case visitRemove:
				v.Items = append(v.Items[:i], v.Items[i+1:]...)
				i--
				continue
			case visitJump:
				i = childAct.index - 1
				continue
			}
			child, childAct = visitNode("value", pair.Value, path, fn)
			pair.Value = child
			switch childAct.kind {
			case visitBreak:
				return n, childAct
			case visitRemove:
				v.Items = append(v.Items[:i], v.Items[i+1:]...)
				i--
			case visitJump:
				i = childAct.index - 1
			}
		}
	}
	return n, VisitAction{}
}
