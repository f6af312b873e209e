// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// AST resolver: turns one CST document into a typed Document under a
// schema. Walks the concrete syntax, applies directives, registers
// anchors, resolves tags and values, and enforces the alias expansion
// guard.

package yamlcore

import (
	"fmt"
	"strings"
)

// ResolveStream resolves every document of a parsed stream.
func ResolveStream(stream *CSTStream, opts *Options) ([]*Document, error) {
	docs := make([]*Document, 0, len(stream.Docs))
	for _, cdoc := range stream.Docs {
		doc, err := ResolveDocument(stream, cdoc, opts)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// ResolveDocument resolves one CST document. The returned error is
// reserved for programmer mistakes (unknown schema or custom tag
// configuration); data problems land in the document's Errors and
// Warnings.
func ResolveDocument(stream *CSTStream, cdoc *CSTDocument, opts *Options) (*Document, error) {
	if opts == nil {
		o := DefaultOptions
		opts = &o
	}
	doc := &Document{
		Options: opts,
		Anchors: newAnchorTable(),
		src:     stream.Source,
	}
	doc.HasDirectivesEnd = cdoc.HasDirectivesEnd
	doc.CommentBefore = strings.Join(cdoc.CommentBefore, "\n")
	doc.Comment = cdoc.Comment

	// Parse diagnostics come first, split by severity.
	for _, e := range cdoc.Errors {
		if e.IsWarning() {
			doc.Warnings = append(doc.Warnings, e)
		} else {
			doc.Errors = append(doc.Errors, e)
		}
	}

	r := &resolver{doc: doc, opts: opts}
	r.applyDirectives(cdoc)

	version := doc.Version
	if version == "" {
		version = opts.Version
	}
	schema, err := NewSchema(opts.SchemaName, version, opts.CustomTags)
	if err != nil {
		return nil, err
	}
	doc.Schema = schema
	r.schema = schema

	doc.Contents = r.resolveNode(cdoc.Contents)
	r.checkAliasCounts()

	opts.logDebug(fmt.Sprintf("resolved document: %d errors, %d warnings, %d anchors",
		len(doc.Errors), len(doc.Warnings), len(doc.Anchors.Names())))
	for _, w := range doc.Warnings {
		opts.logWarning(w)
	}
	if opts.PrettyErrors {
		for _, e := range doc.Errors {
			e.MakePretty(stream.Source)
		}
		for _, e := range doc.Warnings {
			e.MakePretty(stream.Source)
		}
	}
	return doc, nil
}

type resolver struct {
	doc     *Document
	opts    *Options
	schema  *Schema
	aliases []*Alias
}

func (r *resolver) errorf(n *CSTNode, rng Range, format string, args ...any) {
	r.doc.Errors = append(r.doc.Errors, semanticError(n, rng, fmt.Sprintf(format, args...)))
}

func (r *resolver) warnf(n *CSTNode, rng Range, format string, args ...any) {
	r.doc.Warnings = append(r.doc.Warnings, warning(n, rng, fmt.Sprintf(format, args...)))
}

//-----------------------------------------------------------------------------
// Directives
//-----------------------------------------------------------------------------

func (r *resolver) applyDirectives(cdoc *CSTDocument) {
	for _, dir := range cdoc.Directives {
		switch dir.Name {
		case "YAML":
			if r.doc.Version != "" {
				r.errorf(dir, dir.Range, "The %%YAML directive must only be given at most once")
			}
			if len(dir.Parameters) != 1 {
				r.errorf(dir, dir.Range, "Insufficient parameters given for %%YAML directive")
				continue
			}
			v := dir.Parameters[0]
			switch v {
			case "1.0", "1.1", "1.2":
				r.doc.Version = v
			default:
				r.warnf(dir, dir.Range,
					"Document will be parsed as YAML 1.2 rather than YAML %s", v)
				r.doc.Version = "1.2"
			}
		case "TAG":
			if len(dir.Parameters) != 2 {
				r.errorf(dir, dir.Range, "Insufficient parameters given for %%TAG directive")
				continue
			}
			handle, prefix := dir.Parameters[0], dir.Parameters[1]
			if !strings.HasPrefix(handle, "!") || !strings.HasSuffix(handle, "!") {
				r.errorf(dir, dir.Range, "Bad handle format in %%TAG directive")
				continue
			}
			r.doc.TagPrefixes = append(r.doc.TagPrefixes, TagPrefix{Handle: handle, Prefix: prefix})
		}
	}
	if len(cdoc.Directives) > 0 && !cdoc.HasDirectivesEnd {
		last := cdoc.Directives[len(cdoc.Directives)-1]
		r.errorf(last, last.Range, "Directive without document")
	}
}

// expandTag resolves a CST tag property to a full tag URI using the
// document's prefix table and the built-in handles.
func (r *resolver) expandTag(n *CSTNode) (string, bool) {
	if n.TagVerbatim != "" {
		return n.TagVerbatim, true
	}
	if n.TagHandle == "" {
		return "", false
	}
	for _, tp := range r.doc.TagPrefixes {
		if tp.Handle == n.TagHandle {
			return tp.Prefix + n.TagSuffix, true
		}
	}
	switch n.TagHandle {
	case "!!":
		return DefaultTagPrefix + n.TagSuffix, true
	case "!":
		if n.TagSuffix == "" {
			// A lone '!' pins the node to its default type.
			return "", false
		}
		return "!" + n.TagSuffix, true
	}
	r.errorf(n, n.TagRange, "The %s tag handle is nonexistent", n.TagHandle)
	return "", false
}

//-----------------------------------------------------------------------------
// Nodes
//-----------------------------------------------------------------------------

func (r *resolver) resolveNode(cst *CSTNode) Node {
	if cst == nil {
		return nil
	}
	var node Node
	switch cst.Type {
	case AliasValType:
		node = r.resolveAlias(cst)
	case PlainType, QuoteSingleType, QuoteDoubleType, BlockLiteralType, BlockFoldedType:
		node = r.resolveScalar(cst)
	case BlockMapType, FlowMapType:
		node = r.resolveMap(cst)
	case BlockSeqType, FlowSeqType:
		node = r.resolveSeq(cst)
	default:
		return nil
	}
	if node == nil {
		return nil
	}
	base := node.Base()
	base.SrcRange = cst.Range
	base.CommentBefore = strings.Join(cst.CommentBefore, "\n")
	base.Comment = cst.Comment
	if r.opts.KeepCstNodes {
		base.CST = cst
	}
	if cst.Anchor != "" {
		r.doc.Anchors.SetAnchor(node, cst.Anchor)
	}
	return node
}

func (r *resolver) resolveAlias(cst *CSTNode) Node {
	source := r.doc.Anchors.GetNode(cst.Value)
	if source == nil {
		r.doc.Errors = append(r.doc.Errors, referenceError(cst, cst.Range,
			fmt.Sprintf("Aliased anchor not found: %s", cst.Value)))
		return &Scalar{BaseNode: BaseNode{Tag: NullTag}}
	}
	a := &Alias{Name: cst.Value, Source: source}
	r.aliases = append(r.aliases, a)
	return a
}

func scalarStyleOf(t NodeType) ScalarStyle {
	switch t {
	case QuoteSingleType:
		return QuoteSingle
	case QuoteDoubleType:
		return QuoteDouble
	case BlockLiteralType:
		return BlockLiteral
	case BlockFoldedType:
		return BlockFolded
	}
	return Plain
}

func (r *resolver) resolveScalar(cst *CSTNode) Node {
	s := &Scalar{Style: scalarStyleOf(cst.Type)}
	raw := cst.Value

	if tag, ok := r.expandTag(cst); ok {
		if res := r.schema.ForTag(tag, ScalarType); res != nil {
			s.Tag = tag
			s.Format = res.Format
			v, err := res.Resolve(raw, r.opts)
			if err != nil {
				r.errorf(cst, cst.Range, "%s", err.Error())
				s.Value = raw
				return s
			}
			s.Value = v
			return s
		}
		r.warnf(cst, cst.TagRange,
			"tag %s is unavailable, falling back to %s", displayTag(tag), StrTag)
		s.Tag = StrTag
		s.Value = raw
		return s
	}

	if s.Style != Plain {
		s.Tag = StrTag
		s.Value = raw
		return s
	}
	res, v, err := r.schema.resolveImplicit(raw, r.opts)
	if err != nil {
		r.errorf(cst, cst.Range, "%s", err.Error())
		s.Tag = StrTag
		s.Value = raw
		return s
	}
	if res != nil {
		s.Tag = res.Tag
		s.Format = res.Format
	} else {
		s.Tag = StrTag
	}
	s.Value = v
	return s
}

// displayTag shortens the default prefix back to the !! handle for
// messages.
func displayTag(tag string) string {
	if strings.HasPrefix(tag, DefaultTagPrefix) {
		return "!!" + tag[len(DefaultTagPrefix):]
	}
	return tag
}

func (r *resolver) resolveMap(cst *CSTNode) Node {
	m := &YAMLMap{Flow: cst.Type == FlowMapType}
	m.Tag = r.collectionTag(cst, MapType, MapTag)
	for _, item := range cst.Items {
		pair := &Pair{
			Key:   r.resolveNode(item.Key),
			Value: r.resolveNode(item.Value),
		}
		if r.schema.MergeKeys && isMergeKey(pair.Key) {
			pair.Merge = true
			r.validateMerge(cst, item, pair)
		} else {
			for _, prev := range m.Items {
				if !prev.Merge && nodeEqual(prev.Key, pair.Key) {
					r.warnf(item.Key, keyRange(item),
						"Map keys must be unique; %q is repeated", keyText(pair.Key))
					break
				}
			}
		}
		m.Items = append(m.Items, pair)
	}
	return m
}

func keyRange(item *CSTItem) Range {
	if item.Key != nil {
		return item.Key.Range
	}
	return item.Range
}

func keyText(key Node) string {
	if s, ok := key.(*Scalar); ok {
		return fmt.Sprintf("%v", s.Value)
	}
	return "<collection>"
}

// isMergeKey recognises the '<<' merge key: a plain scalar '<<' or any
// scalar tagged !!merge.
func isMergeKey(key Node) bool {
	s, ok := key.(*Scalar)
	if !ok {
		return false
	}
	if s.Tag == MergeTag {
		return true
	}
	v, ok := s.Value.(string)
	return ok && v == "<<" && s.Style == Plain
}

// validateMerge checks that a merge value is an alias to a mapping or a
// sequence of such aliases.
func (r *resolver) validateMerge(cst *CSTNode, item *CSTItem, pair *Pair) {
	ok := false
	switch v := pair.Value.(type) {
	case *Alias:
		_, ok = v.Source.(*YAMLMap)
	case *YAMLSeq:
		ok = len(v.Items) > 0
		for _, it := range v.Items {
			a, isAlias := it.(*Alias)
			if !isAlias {
				ok = false
				break
			}
			if _, isMap := a.Source.(*YAMLMap); !isMap {
				ok = false
				break
			}
		}
	case *YAMLMap:
		// A literal mapping also merges.
		ok = true
	}
	if !ok {
		rng := item.Range
		if item.Value != nil {
			rng = item.Value.Range
		}
		r.errorf(cst, rng, "Merge nodes aliases can only point to maps")
	}
}

func (r *resolver) resolveSeq(cst *CSTNode) Node {
	s := &YAMLSeq{Flow: cst.Type == FlowSeqType}
	s.Tag = r.collectionTag(cst, SeqType, SeqTag)
	for _, item := range cst.Items {
		if item.Key != nil {
			// "? key : value" entries inside a flow sequence become
			// single-pair maps.
			m := &YAMLMap{Flow: true}
			m.Tag = MapTag
			m.Items = []*Pair{{
				Key:   r.resolveNode(item.Key),
				Value: r.resolveNode(item.Value),
			}}
			s.Items = append(s.Items, m)
			continue
		}
		s.Items = append(s.Items, r.resolveNode(item.Value))
	}
	return s
}

// collectionTag expands an explicit tag on a collection, warning and
// falling back by shape when the schema does not know it.
func (r *resolver) collectionTag(cst *CSTNode, kind NodeType, fallback string) string {
	tag, ok := r.expandTag(cst)
	if !ok {
		return fallback
	}
	if res := r.schema.ForTag(tag, kind); res != nil {
		return res.Tag
	}
	r.warnf(cst, cst.TagRange,
		"tag %s is unavailable, falling back to %s", displayTag(tag), fallback)
	return fallback
}

//-----------------------------------------------------------------------------
// Alias expansion guard
//-----------------------------------------------------------------------------

// checkAliasCounts enforces MaxAliasCount: no alias may expand to a
// subtree heavier than the limit. Aliases to aliased content compound, so
// a chain of doublings trips the guard long before memory does.
func (r *resolver) checkAliasCounts() {
	max := r.opts.MaxAliasCount
	if max < 0 {
		return
	}
	weights := make(map[Node]int)
	for _, a := range r.aliases {
		if nodeWeight(a.Source, weights) > max {
			r.doc.Errors = append(r.doc.Errors, referenceError(nil, a.SrcRange,
				"Excessive alias count indicates a denial-of-service attack"))
			return
		}
	}
}

// nodeWeight is the size of a node's resolved subtree: scalars weigh 1,
// collections the sum of their items, aliases the weight of their source.
func nodeWeight(n Node, memo map[Node]int) int {
	if n == nil {
		return 1
	}
	if w, ok := memo[n]; ok {
		return w
	}
	// Guard in-progress nodes against host-constructed cycles.
	memo[n] = 1
	w := 1
	switch v := n.(type) {
	case *Alias:
		w = nodeWeight(v.Source, memo)
	case *YAMLSeq:
		w = 0
		for _, it := range v.Items {
			w += nodeWeight(it, memo)
		}
		if w == 0 {
			w = 1
		}
	case *YAMLMap:
		w = 0
		for _, p := range v.Items {
			w += nodeWeight(p.Value, memo)
		}
		if w == 0 {
			w = 1
		}
	}
	memo[n] = w
	return w
}

// resolveImplicit runs implicit resolution and reports which resolver
// matched.
func (s *Schema) resolveImplicit(raw string, opts *Options) (*TagResolver, any, error) {
	for _, t := range s.Tags {
		if t.NodeKind != ScalarType || t.Test == nil {
			continue
		}
		if t.Test.MatchString(raw) {
			v, err := t.Resolve(raw, opts)
			return t, v, err
		}
	}
	return nil, raw, nil
}
